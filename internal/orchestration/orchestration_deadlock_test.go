package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/agbru/fibbridge/internal/fibonacci"
)

// funcCalculator adapts a function to fibonacci.Calculator.
type funcCalculator struct {
	name string
	fn   func(ctx context.Context, progress chan<- fibonacci.ProgressUpdate, idx int) (*big.Int, error)
}

func (c funcCalculator) Calculate(ctx context.Context, progress chan<- fibonacci.ProgressUpdate, idx int, _ uint64, _ fibonacci.Options) (*big.Int, error) {
	return c.fn(ctx, progress, idx)
}

func (c funcCalculator) Name() string { return c.name }

func instant(name string) fibonacci.Calculator {
	return funcCalculator{name, func(context.Context, chan<- fibonacci.ProgressUpdate, int) (*big.Int, error) {
		return big.NewInt(1), nil
	}}
}

func failing(name string) fibonacci.Calculator {
	return funcCalculator{name, func(context.Context, chan<- fibonacci.ProgressUpdate, int) (*big.Int, error) {
		return nil, errors.New("simulated failure")
	}}
}

// flooding pushes updates without yielding, the way a tight backend loop would.
func flooding(name string) fibonacci.Calculator {
	return funcCalculator{name, func(_ context.Context, progress chan<- fibonacci.ProgressUpdate, idx int) (*big.Int, error) {
		for i := 0; i < 10000; i++ {
			select {
			case progress <- fibonacci.ProgressUpdate{CalculatorIndex: idx, Value: float64(i) / 10000}:
			default:
			}
		}
		return big.NewInt(1), nil
	}}
}

// blocking waits for cancellation.
func blocking(name string) fibonacci.Calculator {
	return funcCalculator{name, func(ctx context.Context, _ chan<- fibonacci.ProgressUpdate, _ int) (*big.Int, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
}

// runWithin fails the test if ExecuteCalculations has not returned after limit.
func runWithin(t *testing.T, ctx context.Context, limit time.Duration, calcs []fibonacci.Calculator, reporter ProgressReporter) []CalculationResult {
	t.Helper()
	done := make(chan []CalculationResult, 1)
	go func() {
		done <- ExecuteCalculations(ctx, calcs, 1000, fibonacci.Options{}, reporter, io.Discard)
	}()
	select {
	case res := <-done:
		return res
	case <-time.After(limit):
		t.Fatal("ExecuteCalculations did not return")
		return nil
	}
}

func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	t.Parallel()
	factory := fibonacci.NewDefaultFactory()
	bigCalc, _ := factory.Get("big")
	wordsCalc, _ := factory.Get("words")

	tests := []struct {
		name  string
		calcs []fibonacci.Calculator
	}{
		{"real backends", []fibonacci.Calculator{bigCalc, wordsCalc}},
		{"instant", []fibonacci.Calculator{instant("a"), instant("b"), instant("c")}},
		{"with failure", []fibonacci.Calculator{instant("ok"), failing("ko")}},
		{"progress flood", []fibonacci.Calculator{flooding("f1"), flooding("f2")}},
		{"single", []fibonacci.Calculator{instant("solo")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, reporter := range []ProgressReporter{NullProgressReporter{}, ProgressReporterFunc(NullProgressReporter{}.DisplayProgress)} {
				res := runWithin(t, context.Background(), 10*time.Second, tt.calcs, reporter)
				if len(res) != len(tt.calcs) {
					t.Fatalf("got %d results, want %d", len(res), len(tt.calcs))
				}
			}
		})
	}
}

func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	res := runWithin(t, ctx, 5*time.Second, []fibonacci.Calculator{blocking("b1"), blocking("b2"), instant("fast")}, NullProgressReporter{})
	for _, r := range res[:2] {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s error = %v, want context.Canceled", r.Name, r.Err)
		}
	}
	if res[2].Err != nil {
		t.Errorf("instant calculator should not be affected: %v", res[2].Err)
	}
}
