package fibonacci

import (
	"context"
	"math/big"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -destination=mocks/mock_calculator.go -package=mocks github.com/agbru/fibbridge/internal/fibonacci Calculator

// Calculator is the interface the CLI, the REPL, the TUI and the HTTP host use
// to compute Fibonacci numbers. Implementations must honour ctx cancellation
// and may publish progress on progressChan, which can be nil.
type Calculator interface {
	// Calculate computes F(n).
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)
	// Name returns a human-readable backend name.
	Name() string
}

// coreCalculator is implemented by each backend. It only has to handle the
// recurrence itself; FibCalculator takes care of small indices, progress
// plumbing and tracing.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error)
	Name() string
}

// Options tunes a calculation.
type Options struct {
	// CheckInterval is the number of steps between cancellation checks.
	// Zero selects DefaultCheckInterval.
	CheckInterval uint64
}

func (o Options) checkInterval() uint64 {
	if o.CheckInterval == 0 {
		return DefaultCheckInterval
	}
	return o.CheckInterval
}

var tracer = otel.Tracer("github.com/agbru/fibbridge/internal/fibonacci")

// FibCalculator adapts a backend to the Calculator interface.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps a backend.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: NewCalculator called with nil core")
	}
	return &FibCalculator{core: core}
}

// Name returns the backend name.
func (c *FibCalculator) Name() string { return c.core.Name() }

// Calculate computes F(n). Indices up to MaxUint64Index are served by a
// uint64 loop; larger ones are delegated to the backend.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	ctx, span := tracer.Start(ctx, "fibonacci.Calculate", trace.WithAttributes(
		attribute.String("fibonacci.backend", c.core.Name()),
		attribute.Int64("fibonacci.n", int64(n)),
	))
	defer span.End()

	reporter := func(v float64) {
		if progressChan == nil {
			return
		}
		select {
		case progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: v}:
		default:
			// A slow display must never stall the calculation.
		}
	}

	if n <= MaxUint64Index {
		reporter(1.0)
		return new(big.Int).SetUint64(smallFibonacci(n)), nil
	}

	result, err := c.core.CalculateCore(ctx, reporter, n, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("fibonacci.result_bits", result.BitLen()))
	reporter(1.0)
	return result, nil
}

// smallFibonacci runs the recurrence on uint64 for n <= MaxUint64Index.
func smallFibonacci(n uint64) uint64 {
	var a, b uint64 = 0, 1
	if n == 0 {
		return a
	}
	for i := uint64(1); i < n; i++ {
		a, b = b, a+b
	}
	return b
}
