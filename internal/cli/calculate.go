package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibbridge/internal/config"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/fibonacci/memory"
	"github.com/agbru/fibbridge/internal/ui"
)

// PrintExecutionConfig displays the target index, limits and environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Recurrence: %s%d%s additions, cancellation check every %s%d%s steps, GC mode %s%s%s.\n",
		ui.ColorCyan(), additions(cfg.N), ui.ColorReset(),
		ui.ColorCyan(), cfg.CheckInterval, ui.ColorReset(),
		ui.ColorCyan(), cfg.GCMode, ui.ColorReset())
	fmt.Fprintf(out, "Estimated memory: %s%s%s.\n",
		ui.ColorCyan(), memory.FormatMemoryEstimate(memory.EstimateMemoryUsage(cfg.N)), ui.ColorReset())
}

func additions(n uint64) uint64 {
	if n < 2 {
		return 0
	}
	return n - 1
}

// PrintExecutionMode displays whether one backend runs or several are
// compared.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	var modeDesc string
	switch len(calculators) {
	case 0:
		modeDesc = "No backend selected"
	case 1:
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s backend",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d backends", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
