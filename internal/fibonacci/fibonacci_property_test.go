package fibonacci

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// calcF is a shorthand that computes F(n) with the given backend.
func calcF(calc coreCalculator, n uint64) (*big.Int, error) {
	return calc.CalculateCore(context.Background(), func(float64) {}, n, Options{})
}

// allCalculators returns the core backends that are always compiled in.
func allCalculators() []coreCalculator {
	return []coreCalculator{
		&IterativeBig{},
		&IterativeWords{},
	}
}

// TestFibonacciRecurrence_PropertyBased checks F(n) = F(n-1) + F(n-2) on the
// decimal output of Fibonacci.
func TestFibonacciRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("F(n) = F(n-1) + F(n-2)", prop.ForAll(
		func(n uint32) bool {
			fn, _ := new(big.Int).SetString(Fibonacci(n), 10)
			f1, _ := new(big.Int).SetString(Fibonacci(n-1), 10)
			f2, _ := new(big.Int).SetString(Fibonacci(n-2), 10)
			return fn.Cmp(new(big.Int).Add(f1, f2)) == 0
		},
		gen.UInt32Range(2, 3000),
	))

	properties.TestingRun(t)
}

// TestFibonacciIdempotence_PropertyBased checks that repeated calls agree.
func TestFibonacciIdempotence_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("Fibonacci(n) is stable across calls", prop.ForAll(
		func(n uint32) bool {
			return Fibonacci(n) == Fibonacci(n)
		},
		gen.UInt32Range(0, 2000),
	))

	properties.TestingRun(t)
}

// TestFibonacciMonotonic_PropertyBased checks F(n+1) >= F(n), with strict
// growth from n = 2 on.
func TestFibonacciMonotonic_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("F(n+1) >= F(n)", prop.ForAll(
		func(n uint32) bool {
			a, _ := new(big.Int).SetString(Fibonacci(n), 10)
			b, _ := new(big.Int).SetString(Fibonacci(n+1), 10)
			if n >= 2 {
				return b.Cmp(a) > 0
			}
			return b.Cmp(a) >= 0
		},
		gen.UInt32Range(0, 2000),
	))

	properties.TestingRun(t)
}

// TestBackendsAgree_PropertyBased cross-checks every backend against the
// reference Fibonacci function.
func TestBackendsAgree_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, calculator := range allCalculators() {
		properties.Property(calculator.Name()+" matches Fibonacci", prop.ForAll(
			func(n uint32) bool {
				got, err := calcF(calculator, uint64(n))
				if err != nil {
					t.Logf("Error calculating F(%d): %v", n, err)
					return false
				}
				return got.String() == Fibonacci(n)
			},
			gen.UInt32Range(0, 5000),
		))
	}

	properties.TestingRun(t)
}

// TestCassinisIdentity_PropertyBased verifies
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
//
// for every backend. Additions alone never compute a product, so the identity
// catches carry bugs that a plain recurrence check could miss.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	for _, calculator := range allCalculators() {
		properties.Property(calculator.Name()+" satisfies Cassini's Identity", prop.ForAll(
			func(n uint64) bool {
				fnMinus1, err := calcF(calculator, n-1)
				if err != nil {
					return false
				}
				fn, err := calcF(calculator, n)
				if err != nil {
					return false
				}
				fnPlus1, err := calcF(calculator, n+1)
				if err != nil {
					return false
				}

				leftSide := new(big.Int).Mul(fnMinus1, fnPlus1)
				leftSide.Sub(leftSide, new(big.Int).Mul(fn, fn))

				rightSide := big.NewInt(1)
				if n%2 != 0 {
					rightSide.Neg(rightSide)
				}
				return leftSide.Cmp(rightSide) == 0
			},
			gen.UInt64Range(1, 4000),
		))
	}

	properties.TestingRun(t)
}
