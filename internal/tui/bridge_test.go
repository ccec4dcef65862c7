package tui

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/orchestration"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op
	reporter := &TUIProgressReporter{ref: ref}

	ch := make(chan fibonacci.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)

	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.25}
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.50}
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 1.00}
	close(ch)

	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()
}

func TestTUIProgressReporter_ZeroCalculators(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan fibonacci.ProgressUpdate, 5)
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestTUIProgressReporter_MultipleCalculators(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan fibonacci.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)

	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.25}
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 1, Value: 0.50}
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.75}
	ch <- fibonacci.ProgressUpdate{CalculatorIndex: 1, Value: 1.00}
	close(ch)

	go reporter.DisplayProgress(&wg, ch, 2, nil)
	wg.Wait()
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressMsg{Value: 0.5})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref.Send(ProgressMsg{Value: float64(i) / 100})
		}(i)
	}
	wg.Wait()
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	presenter := &TUIResultPresenter{}
	for _, d := range []time.Duration{0, 500 * time.Microsecond, 42 * time.Millisecond, 3 * time.Minute} {
		if presenter.FormatDuration(d) == "" {
			t.Errorf("expected non-empty duration format for %v", d)
		}
	}
}

func TestTUIResultPresenter_Entry(t *testing.T) {
	presenter := &TUIResultPresenter{}
	results := []orchestration.CalculationResult{
		{Name: "Iterative (math/big)", Result: big.NewInt(55), Duration: 100 * time.Millisecond},
		{Name: "Iterative (word vector)", Result: big.NewInt(55), Duration: 200 * time.Millisecond},
	}
	presenter.PresentComparisonTable(results, nil)
	presenter.PresentResult(results[0], orchestration.PresentationOptions{N: 10}, nil)

	e := presenter.Entry(10, "all", apperrors.ExitSuccess)
	if e.Value != "55" || e.Backends != 2 || e.Backend != "Iterative (math/big)" || e.Err != nil {
		t.Errorf("Entry = %+v", e)
	}
}

func TestTUIResultPresenter_EntryMismatch(t *testing.T) {
	presenter := &TUIResultPresenter{}
	e := presenter.Entry(10, "all", apperrors.ExitErrorMismatch)
	if !errors.Is(e.Err, errMismatch) {
		t.Errorf("Entry.Err = %v, want mismatch", e.Err)
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
		{"nil", nil, apperrors.ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenter := &TUIResultPresenter{}
			if got := presenter.HandleError(tt.err, 5*time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
			if tt.err != nil {
				e := presenter.Entry(1, "big", tt.want)
				if !errors.Is(e.Err, tt.err) || e.Duration != 5*time.Second {
					t.Errorf("Entry = %+v", e)
				}
			}
		})
	}
}
