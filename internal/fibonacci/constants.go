package fibonacci

const (
	// DefaultCheckInterval is the number of recurrence steps between two
	// cancellation checks (and progress reports) in the cancellable backends.
	// A step costs one big addition, so a few thousand steps keep the check
	// overhead negligible while still reacting to a timeout within milliseconds
	// for n in the millions.
	DefaultCheckInterval = 4096

	// MaxUint64Index is the largest n for which F(n) fits in a uint64.
	// F(93) = 12200160415121876738; F(94) overflows.
	MaxUint64Index = 93

	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// F(n) has about n * FibonacciGrowthFactor bits.
	FibonacciGrowthFactor = 0.69424

	// DecimalGrowthFactor is log10(phi); F(n) has about n * DecimalGrowthFactor
	// decimal digits.
	DecimalGrowthFactor = 0.20898764
)
