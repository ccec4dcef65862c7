package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so that
// a slow display rarely causes dropped updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator concurrently on the same n and
// returns their results in input order. Progress is forwarded to
// progressReporter until all calculators have returned.
//
// A failing calculator does not cancel the others: the comparison needs every
// backend's outcome.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		idx, calculator := i, calc
		g.Go(func() error {
			start := time.Now()
			res, err := calculator.Calculate(ctx, progressChan, idx, n, opts)
			results[idx] = CalculationResult{
				Name: calculator.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents the comparison and checks that every successful backend produced
// the same value. It returns the process exit code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	var firstErrorDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
				firstErrorDuration = results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No backend could complete the calculation.\n")
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree on F(%d).\n",
				firstValid.Name, res.Name, opts.N)
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// FindBestResult returns the fastest successful result, or nil.
func FindBestResult(results []CalculationResult) *CalculationResult {
	var best *CalculationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}
