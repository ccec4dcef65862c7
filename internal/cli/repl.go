package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/ui"
)

// REPLConfig configures an interactive session.
type REPLConfig struct {
	// DefaultAlgo is the backend used by calc; "all" or an unknown name
	// selects the first registered backend.
	DefaultAlgo string
	// Timeout bounds each calculation.
	Timeout time.Duration
	// CheckInterval is passed to the backends.
	CheckInterval uint64
	// HexOutput displays results in hexadecimal.
	HexOutput bool
}

// REPL is an interactive Fibonacci session over a line-oriented reader.
type REPL struct {
	config      REPLConfig
	registry    map[string]fibonacci.Calculator
	names       []string
	currentAlgo string
	commands    []replCommand
	in          io.Reader
	out         io.Writer
}

// replCommand is one entry of the command table. run returns false to end
// the session.
type replCommand struct {
	names []string
	usage string
	help  string
	run   func(args []string) bool
}

// NewREPL creates a session over the given backends, reading stdin and
// writing stdout until told otherwise.
func NewREPL(registry map[string]fibonacci.Calculator, config REPLConfig) *REPL {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &REPL{
		config:      config,
		registry:    registry,
		names:       names,
		currentAlgo: config.DefaultAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
	if _, ok := registry[r.currentAlgo]; !ok && len(names) > 0 {
		r.currentAlgo = names[0]
	}

	keepGoing := func(f func(args []string)) func([]string) bool {
		return func(args []string) bool { f(args); return true }
	}
	r.commands = []replCommand{
		{[]string{"calc", "c"}, "calc <n>", "Calculate F(n) with the current backend", keepGoing(r.cmdCalc)},
		{[]string{"algo", "a"}, "algo <name>", "Change backend", keepGoing(r.cmdAlgo)},
		{[]string{"compare", "cmp"}, "compare <n>", "Run every backend on F(n)", keepGoing(r.cmdCompare)},
		{[]string{"last"}, "last <n> <k>", "Last k decimal digits of F(n)", keepGoing(r.cmdLast)},
		{[]string{"list", "ls"}, "list", "List available backends", keepGoing(func([]string) { r.cmdList() })},
		{[]string{"hex"}, "hex", "Toggle hexadecimal display", keepGoing(func([]string) { r.cmdHex() })},
		{[]string{"status", "st"}, "status", "Display current configuration", keepGoing(func([]string) { r.cmdStatus() })},
		{[]string{"help", "h", "?"}, "help", "Display this help", keepGoing(func([]string) { r.printHelp() })},
		{[]string{"exit", "quit", "q"}, "exit", "Leave interactive mode", func([]string) bool {
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
			return false
		}},
	}
	return r
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until exit or end of input.
func (r *REPL) Start() {
	fmt.Fprintf(r.out, "\n%sfibbridge interactive mode%s (backends: %s)\n\n",
		ui.ColorBold(), ui.ColorReset(), r.algoList())
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"fib> "+ui.ColorReset())

		line, err := reader.ReadString('\n')
		// A final line without newline still runs.
		if !r.dispatch(strings.TrimSpace(line)) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range r.commands {
		fmt.Fprintf(r.out, "  %s%-14s%s %s\n", ui.ColorYellow(), c.usage, ui.ColorReset(), c.help)
	}
	fmt.Fprintf(r.out, "  %s%-14s%s Same as calc <n>\n", ui.ColorYellow(), "<n>", ui.ColorReset())
}

func (r *REPL) algoList() string { return strings.Join(r.names, ", ") }

// dispatch runs one line and reports whether the session continues.
func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	for _, c := range r.commands {
		for _, alias := range c.names {
			if alias == name {
				return c.run(args)
			}
		}
	}
	if n, err := strconv.ParseUint(name, 10, 64); err == nil {
		r.calculate(n)
		return true
	}
	fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
	fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	return true
}

// parseArgs parses want unsigned arguments for cmd, printing usage on error.
func (r *REPL) parseArgs(usage string, args []string, want int) ([]uint64, bool) {
	if len(args) < want {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return nil, false
	}
	vals := make([]uint64, want)
	for i := range vals {
		v, err := strconv.ParseUint(args[i], 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[i], ui.ColorReset())
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func (r *REPL) options() fibonacci.Options {
	return fibonacci.Options{CheckInterval: r.config.CheckInterval}
}

func (r *REPL) cmdCalc(args []string) {
	if v, ok := r.parseArgs("calc <n>", args, 1); ok {
		r.calculate(v[0])
	}
}

// calculate runs the current backend with a spinner.
func (r *REPL) calculate(n uint64) {
	calc, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sBackend not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating F(%s%d%s) with %s%s%s...\n",
		ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorCyan(), calc.Name(), ui.ColorReset())

	progressChan := make(chan fibonacci.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := calc.Calculate(ctx, progressChan, 0, n, r.options())
	elapsed := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	decimal := result.String()
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(elapsed), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), len(decimal), ui.ColorReset())

	shown, suffix := decimal, ""
	switch {
	case r.config.HexOutput:
		shown = "0x" + result.Text(16)
	default:
		if s, truncated := format.TruncateDigits(decimal, TruncationLimit, DisplayEdges); truncated {
			shown, suffix = s, " (truncated)"
		}
	}
	fmt.Fprintf(r.out, "  F(%d) = %s%s%s%s\n\n", n, ui.ColorGreen(), shown, ui.ColorReset(), suffix)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.algoList())
		return
	}
	name := strings.ToLower(args[0])
	calc, ok := r.registry[name]
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown backend: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available backends: %s\n", r.algoList())
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Backend changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

// cmdCompare runs every backend in name order and flags any result that
// differs from the first successful one.
func (r *REPL) cmdCompare(args []string) {
	v, ok := r.parseArgs("compare <n>", args, 1)
	if !ok {
		return
	}
	n := v[0]
	rule := ui.ColorCyan() + strings.Repeat("─", 45) + ui.ColorReset()
	fmt.Fprintf(r.out, "\n%sComparison for F(%d):%s\n%s\n", ui.ColorBold(), n, ui.ColorReset(), rule)

	var reference string
	for _, name := range r.names {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		result, err := r.registry[name].Calculate(ctx, nil, 0, n, r.options())
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		decimal := result.String()
		if reference == "" {
			reference = decimal
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if decimal != reference {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-10s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(elapsed), ui.ColorReset(), status)
	}
	fmt.Fprintf(r.out, "%s\n\n", rule)
}

func (r *REPL) cmdLast(args []string) {
	v, ok := r.parseArgs("last <n> <k>", args, 2)
	if !ok {
		return
	}
	if v[1] == 0 || v[1] > fibonacci.MaxLastDigits {
		fmt.Fprintf(r.out, "%sk must be between 1 and %d%s\n", ui.ColorRed(), fibonacci.MaxLastDigits, ui.ColorReset())
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	digits, err := fibonacci.LastDigits(ctx, v[0], int(v[1]), r.options())
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  F(%d) mod 10^%d = %s%s%s\n", v[0], v[1], ui.ColorGreen(), digits, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable backends:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.names {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), r.registry[name].Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.HexOutput, "enabled", "disabled"), ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Backend:        %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Check interval: %s%d%s steps\n", ui.ColorCyan(), r.config.CheckInterval, ui.ColorReset())
	fmt.Fprintf(r.out, "  Hexadecimal:    %s%s%s\n\n", ui.ColorCyan(), onOff(r.config.HexOutput, "yes", "no"), ui.ColorReset())
}

func onOff(b bool, on, off string) string {
	if b {
		return on
	}
	return off
}
