//go:build gmp

// The GMP backend needs cgo and libgmp (libgmp-dev on Debian/Ubuntu, gmp on
// Homebrew). It is opt-in: go build -tags=gmp.

package fibonacci

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterCalculator("gmp", func() coreCalculator { return &IterativeGMP{} })
}

// IterativeGMP runs the linear recurrence on GMP integers.
type IterativeGMP struct{}

// Name returns the backend name.
func (*IterativeGMP) Name() string { return "Iterative (GMP)" }

// CalculateCore computes F(n) in n-1 additions.
func (*IterativeGMP) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if n == 0 {
		return big.NewInt(0), nil
	}
	if n == 1 {
		return big.NewInt(1), nil
	}

	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	next := gmp.NewInt(0)
	err := iterate(ctx, reporter, n-1, opts.checkInterval(), func() {
		next.Add(a, b)
		a, b, next = b, next, a
	})
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b.Bytes()), nil
}
