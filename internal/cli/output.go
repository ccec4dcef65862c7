package cli

// Display* functions write to an io.Writer, Format* functions only build
// strings, Write* functions touch the filesystem.

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/orchestration"
	"github.com/agbru/fibbridge/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose prints the full value instead of a truncated one.
	Verbose bool
	// ShowValue prints the value at all.
	ShowValue bool
	// Hex prints the value in base 16.
	Hex bool
}

// WriteResultToFile writes a result with a commented header. It creates the
// parent directory when needed.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, backend string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	decimal := result.String()
	fmt.Fprintf(file, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Backend: %s\n", backend)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(decimal))
	fmt.Fprintf(file, "\n")
	if config.Hex {
		fmt.Fprintf(file, "F(%d) =\n0x%s\n", n, result.Text(16))
	} else {
		fmt.Fprintf(file, "F(%d) =\n%s\n", n, decimal)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare value, suitable for scripting.
func FormatQuietResult(result *big.Int, hex bool) string {
	if hex {
		return "0x" + result.Text(16)
	}
	return result.String()
}

// DisplayQuietResult prints the bare value on one line.
func DisplayQuietResult(out io.Writer, result *big.Int, hex bool) {
	fmt.Fprintln(out, FormatQuietResult(result, hex))
}

// DisplayResult prints the timing, the optional details and the optional
// value of a result.
func DisplayResult(result *big.Int, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nCalculation time: %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())

	decimal := result.String()
	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Result binary size: %s%s%s bits\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.BitLen())), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:   %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(decimal))), ui.ColorReset())
		if est := expectedDigits(opts.N); est > 0 {
			fmt.Fprintf(out, "Expected digits:    ~%s\n", format.FormatNumberString(fmt.Sprint(est)))
		}
	}

	if !opts.ShowValue && !opts.Verbose {
		return
	}

	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())
	if opts.Hex {
		hex := result.Text(16)
		if !opts.Verbose && len(hex) > 2*HexDisplayEdges {
			fmt.Fprintf(out, "F(%d) = %s0x%s...%s%s (truncated)\n",
				opts.N, ui.ColorGreen(), hex[:HexDisplayEdges], hex[len(hex)-HexDisplayEdges:], ui.ColorReset())
			return
		}
		fmt.Fprintf(out, "F(%d) = %s0x%s%s\n", opts.N, ui.ColorGreen(), hex, ui.ColorReset())
		return
	}

	if opts.Verbose {
		fmt.Fprintf(out, "F(%d) = %s%s%s\n", opts.N, ui.ColorGreen(), format.FormatNumberString(decimal), ui.ColorReset())
		return
	}
	if shown, truncated := format.TruncateDigits(decimal, TruncationLimit, DisplayEdges); truncated {
		fmt.Fprintf(out, "F(%d) = %s%s%s (truncated)\n", opts.N, ui.ColorGreen(), shown, ui.ColorReset())
		fmt.Fprintf(out, "%sTip: use -v to print the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "F(%d) = %s%s%s\n", opts.N, ui.ColorGreen(), format.FormatNumberString(decimal), ui.ColorReset())
}

// expectedDigits is the closed-form digit count of F(n), used as a sanity
// line in the details block.
func expectedDigits(n uint64) uint64 {
	if n < 2 {
		return 0
	}
	return uint64(float64(n)*fibonacci.DecimalGrowthFactor) + 1
}

// DisplayResultWithConfig prints a result in quiet or standard form and saves
// it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n uint64, duration time.Duration, backend string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result, config.Hex)
	} else {
		DisplayResult(result, duration, orchestration.PresentationOptions{
			N: n, Verbose: config.Verbose, Details: true, ShowValue: config.ShowValue, Hex: config.Hex,
		}, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, n, duration, backend, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
