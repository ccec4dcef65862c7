package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibbridge/internal/fibonacci"
)

// CalculationResult is the outcome of one backend's run. It is the shared
// domain type between orchestration and presentation.
type CalculationResult struct {
	// Name is the backend name (e.g. "Iterative (word vector)").
	Name string
	// Result is F(n). It is nil if an error occurred.
	Result *big.Int
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error the backend returned, if any.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
	Hex       bool
}

// ProgressReporter displays calculation progress. Orchestration only knows
// this interface, so the spinner, the TUI and quiet mode plug in the same way.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode, by the HTTP host and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-backend summary.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult displays the agreed value.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps a calculation error to an exit code, printing it.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
