package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates so a stalled first update does not print nonsense.
const maxETA = 24 * time.Hour

// ProgressState tracks the progress of several concurrent calculators and
// reports their average.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a state tracking numCalculators calculators.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records value (clamped to [0, 1]) for the calculator at index.
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress over all calculators.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCalculators == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with an estimated time of arrival
// derived from the average progress rate since creation.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker whose clock starts now.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numCalculators),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a progress value and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 when there is not yet
// enough data.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if p.progressRate <= 0 || avg <= 0 {
		return 0
	}
	remaining := (1.0 - avg) / p.progressRate
	eta := time.Duration(remaining * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA compactly ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress as a bar of the given width.
func ProgressBar(progress float64, length int) string {
	progress = clamp01(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders "  42.00% [████░░░░] ETA: 12s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%6.2f%% [%s] ETA: %s", clamp01(progress)*100, ProgressBar(progress, width), FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
