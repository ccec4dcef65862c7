package fibonacci

import "math/big"

// Fibonacci returns the decimal representation of F(n).
//
// The value is computed with the plain linear recurrence on arbitrary-precision
// accumulators: starting from (0, 1), each of the n-1 steps replaces (a, b) by
// (b, a+b). The function is pure and total over uint32; it never wraps and has
// no error path, so large n is slow but always exact.
func Fibonacci(n uint32) string {
	a := new(big.Int)
	b := big.NewInt(1)

	if n == 0 {
		return a.String()
	}
	if n == 1 {
		return b.String()
	}

	for i := uint32(1); i < n; i++ {
		// a becomes a+b, then the pair is swapped so that b holds the newest term.
		a.Add(a, b)
		a, b = b, a
	}

	return b.String()
}
