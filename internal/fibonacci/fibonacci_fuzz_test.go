package fibonacci

import (
	"context"
	"testing"
)

// FuzzBackendConsistency verifies that the word-vector backend agrees with
// the math/big backend. The two share no arithmetic code.
func FuzzBackendConsistency(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(2))
	f.Add(uint64(92))
	f.Add(uint64(93)) // Max Fibonacci that fits in uint64
	f.Add(uint64(94))
	f.Add(uint64(186)) // Crosses two words
	f.Add(uint64(1000))

	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 20000 {
			return
		}

		ctx := context.Background()
		resultBig, err := (&IterativeBig{}).CalculateCore(ctx, nil, n, Options{})
		if err != nil {
			t.Fatalf("IterativeBig failed for n=%d: %v", n, err)
		}
		resultWords, err := (&IterativeWords{}).CalculateCore(ctx, nil, n, Options{})
		if err != nil {
			t.Fatalf("IterativeWords failed for n=%d: %v", n, err)
		}
		if resultBig.Cmp(resultWords) != 0 {
			t.Errorf("mismatch for n=%d: big=%s words=%s", n, resultBig, resultWords)
		}
	})
}

// FuzzLastDigits checks that LastDigits is a suffix of the full value.
func FuzzLastDigits(f *testing.F) {
	f.Add(uint64(100), 4)
	f.Add(uint64(0), 3)
	f.Add(uint64(15), 10)

	f.Fuzz(func(t *testing.T, n uint64, k int) {
		if n > 5000 || k < 1 || k > 50 {
			return
		}
		got, err := LastDigits(context.Background(), n, k, Options{})
		if err != nil {
			t.Fatalf("LastDigits(%d, %d) failed: %v", n, k, err)
		}
		full := Fibonacci(uint32(n))
		for len(full) < k {
			full = "0" + full
		}
		if want := full[len(full)-k:]; got != want {
			t.Errorf("LastDigits(%d, %d) = %s, want %s", n, k, got, want)
		}
	})
}
