package fibonacci

import (
	"context"
	"math/big"

	"github.com/agbru/fibbridge/internal/bignum"
)

func init() {
	RegisterCalculator("big", func() coreCalculator { return &IterativeBig{} })
	RegisterCalculator("words", func() coreCalculator { return &IterativeWords{} })
}

// IterativeBig runs the linear recurrence on math/big integers.
// Three big.Int values rotate so the loop allocates only when an accumulator
// outgrows its backing array.
type IterativeBig struct{}

// Name returns the backend name.
func (*IterativeBig) Name() string { return "Iterative (math/big)" }

// CalculateCore computes F(n) in n-1 additions.
func (*IterativeBig) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	a := new(big.Int)
	b := big.NewInt(1)
	if n == 0 {
		return a, nil
	}
	if n == 1 {
		return b, nil
	}

	next := new(big.Int)
	err := iterate(ctx, reporter, n-1, opts.checkInterval(), func() {
		next.Add(a, b)
		a, b, next = b, next, a
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// IterativeWords runs the linear recurrence on bignum.Nat, the package's own
// word-vector integer. It exists as an independent implementation of the
// arithmetic against which math/big results are cross-checked.
type IterativeWords struct{}

// Name returns the backend name.
func (*IterativeWords) Name() string { return "Iterative (word vector)" }

// CalculateCore computes F(n) in n-1 additions.
func (*IterativeWords) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	a := bignum.Zero()
	b := bignum.One()
	if n == 0 {
		return a.Big(), nil
	}
	if n == 1 {
		return b.Big(), nil
	}

	spare := bignum.Zero()
	err := iterate(ctx, reporter, n-1, opts.checkInterval(), func() {
		next := bignum.AddInto(spare, a, b)
		a, b, spare = b, next, a
	})
	if err != nil {
		return nil, err
	}
	return b.Big(), nil
}
