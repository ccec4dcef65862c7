package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation:      t.generation,
			CalculatorIndex: ap.CalculatorIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler by recording the outcome instead of printing it.
type TUIResultPresenter struct {
	backends int
	best     *orchestration.CalculationResult
	err      error
	elapsed  time.Duration
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable records how many backends ran.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.backends = len(results)
}

// PresentResult records the agreed value.
func (t *TUIResultPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	r := result
	t.best = &r
}

// FormatDuration formats d the way the CLI does.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError records err and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.err = err
	t.elapsed = duration
	return apperrors.ExitCodeFor(err)
}

// Entry builds the history entry for a finished run.
func (t *TUIResultPresenter) Entry(n uint64, algo string, exitCode int) HistoryEntry {
	e := HistoryEntry{N: n, Algo: algo, Backends: t.backends, ExitCode: exitCode}
	switch {
	case t.best != nil:
		e.Value = t.best.Result.String()
		e.Duration = t.best.Duration
		e.Backend = t.best.Name
	case t.err != nil:
		e.Err = t.err
		e.Duration = t.elapsed
	}
	if exitCode == apperrors.ExitErrorMismatch {
		e.Err = errMismatch
	}
	return e
}
