package orchestration

import (
	"time"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/format"
)

// ProgressAggregator folds the updates of calculators racing on the same n
// into one average and an ETA. The CLI spinner and the TUI bridge share it.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	backends int
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(backends int) *ProgressAggregator {
	if backends <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(backends), backends: backends}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records update and returns the refreshed average and ETA.
func (a *ProgressAggregator) Update(update fibonacci.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// Average is the current mean progress, for redraws between updates.
func (a *ProgressAggregator) Average() float64 { return a.state.CalculateAverage() }

// ETA is the current estimate, for redraws between updates.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.GetETA() }

// Comparing reports whether more than one backend is being tracked.
func (a *ProgressAggregator) Comparing() bool { return a.backends > 1 }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan fibonacci.ProgressUpdate) {
	for range progressChan {
	}
}
