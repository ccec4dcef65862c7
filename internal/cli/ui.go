package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/orchestration"
	"github.com/agbru/fibbridge/internal/ui"
)

const (
	// TruncationLimit is the digit count above which results are truncated
	// on standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept at each end of a truncated
	// decimal value.
	DisplayEdges = 25
	// HexDisplayEdges is the same for hexadecimal output.
	HexDisplayEdges = 40
	// ProgressRefreshRate is the spinner refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.Start()
	defer s.Stop()

	label := "Computing"
	if agg.Comparing() {
		label = fmt.Sprintf("Computing (%d backends)", numCalculators)
	}
	render := func(progress float64, eta time.Duration) {
		s.UpdateSuffix(fmt.Sprintf(" %s%s%s %s", ui.ColorCyan(), label, ui.ColorReset(),
			format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)))
	}
	render(0, 0)

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render(1.0, 0)
				return
			}
			p := agg.Update(update)
			render(p.AverageProgress, p.ETA)
		case <-ticker.C:
			render(agg.Average(), agg.ETA())
		}
	}
}

// CLIColorProvider supplies terminal colors to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
