package fibonacci

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// MaxLastDigits bounds the --last-digits request.
const MaxLastDigits = 10_000

// IterativeMod computes F(n) mod m with the linear recurrence on reduced
// values, so memory stays O(log m) whatever n is. Moduli below 2^63 run on
// uint64 (a+b cannot overflow); larger ones use math/big.
func IterativeMod(ctx context.Context, n uint64, m *big.Int, opts Options) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}
	if m.IsUint64() && m.Uint64() <= math.MaxInt64 {
		r, err := iterativeMod64(ctx, n, m.Uint64(), opts)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(r), nil
	}

	a := new(big.Int)
	b := big.NewInt(1)
	if n == 0 {
		return a, nil
	}
	next := new(big.Int)
	err := iterate(ctx, nil, n-1, opts.checkInterval(), func() {
		next.Add(a, b)
		if next.Cmp(m) >= 0 {
			next.Sub(next, m)
		}
		a, b, next = b, next, a
	})
	if err != nil {
		return nil, err
	}
	return b.Mod(b, m), nil
}

func iterativeMod64(ctx context.Context, n, m uint64, opts Options) (uint64, error) {
	if m == 1 || n == 0 {
		return 0, nil
	}
	var a, b uint64 = 0, 1
	err := iterate(ctx, nil, n-1, opts.checkInterval(), func() {
		next := a + b
		if next >= m {
			next -= m
		}
		a, b = b, next
	})
	if err != nil {
		return 0, err
	}
	return b, nil
}

// LastDigits returns the last k decimal digits of F(n), zero-padded to
// exactly k characters.
func LastDigits(ctx context.Context, n uint64, k int, opts Options) (string, error) {
	if k <= 0 || k > MaxLastDigits {
		return "", fmt.Errorf("digit count must be between 1 and %d, got %d", MaxLastDigits, k)
	}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	r, err := IterativeMod(ctx, n, mod, opts)
	if err != nil {
		return "", err
	}
	s := r.String()
	return strings.Repeat("0", k-len(s)) + s, nil
}
