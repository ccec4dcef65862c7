package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fibbridge/internal/cli"
	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/fibonacci/memory"
	"github.com/agbru/fibbridge/internal/logging"
	"github.com/agbru/fibbridge/internal/metrics"
	"github.com/agbru/fibbridge/internal/orchestration"
	"github.com/agbru/fibbridge/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No backend available for --algo %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	gc := memory.NewGCController(a.Config.GCMode, a.Config.N)
	gc.SetLogger(a.Logger.Zerolog())
	collector := metrics.NewMemoryCollector()

	before := collector.Snapshot()
	gc.Begin()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, a.Config.ToCalculationOptions(), progressReporter, progressOut)
	gc.End()
	delta := metrics.Delta(before, collector.Snapshot())

	a.Logger.Debug("calculation finished",
		logging.Uint64("n", a.Config.N),
		logging.Int("backends", len(results)),
		logging.Uint64("allocated_bytes", delta.Allocated),
	)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
		Hex:        a.Config.HexOutput,
	}
	code := a.analyzeResultsWithOutput(results, outputCfg, out)

	if a.Config.Details && !a.Config.Quiet && code == apperrors.ExitSuccess {
		cli.DisplayMemoryStats(delta.HeapAfter, delta.Allocated, delta.NumGC, delta.PauseTotalNs, out)
	}
	return code
}

// validateMemoryBudget checks if the estimated memory usage fits within the configured limit.
func (a *Application) validateMemoryBudget(out io.Writer) int {
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	est := memory.EstimateMemoryUsage(a.Config.N)
	if est.TotalBytes > limit {
		memErr := apperrors.MemoryError{Requested: est.TotalBytes, Limit: limit}
		a.Logger.Debug("memory budget exceeded", logging.Err(memErr))
		fmt.Fprintf(out, "Estimated memory %s exceeds limit %s.\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
		fmt.Fprintf(out, "Consider using --last-digits K for O(K) memory usage.\n")
		return apperrors.ExitCodeFor(memErr)
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

// runLastDigits computes only the last K decimal digits of F(N). The
// recurrence runs on residues, so memory stays O(K) regardless of N.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	k := a.Config.LastDigits
	n := a.Config.N

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	digits, err := fibonacci.LastDigits(ctx, n, k, a.Config.ToCalculationOptions())
	elapsed := time.Since(start)
	if err != nil {
		return apperrors.HandleCalculationError(err, elapsed, a.ErrWriter, cli.CLIColorProvider{})
	}

	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
	} else {
		fmt.Fprintf(out, "Last %d digits of F(%d): %s\n", k, n, digits)
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	if outputCfg.Quiet {
		// Cross-check silently; the report only surfaces when it fails.
		var report bytes.Buffer
		code := orchestration.AnalyzeComparisonResults(results,
			orchestration.PresentationOptions{N: a.Config.N}, quietPresenter{}, quietPresenter{}, &report)
		if code != apperrors.ExitSuccess {
			_, _ = report.WriteTo(a.ErrWriter)
			return code
		}
		best := orchestration.FindBestResult(results)
		cli.DisplayQuietResult(out, best.Result, outputCfg.Hex)
		if err := a.saveResultIfNeeded(best, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
		Hex:       a.Config.HexOutput,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	best := orchestration.FindBestResult(results)
	if best != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := a.saveResultIfNeeded(best, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// quietPresenter only reports failures.
type quietPresenter struct{}

func (quietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

func (quietPresenter) PresentResult(orchestration.CalculationResult, orchestration.PresentationOptions, io.Writer) {
}

func (quietPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, cli.CLIColorProvider{})
}
