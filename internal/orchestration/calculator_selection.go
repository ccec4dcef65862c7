package orchestration

import (
	"fmt"

	"github.com/agbru/fibbridge/internal/fibonacci"
)

// AlgoAll selects every registered backend.
const AlgoAll = "all"

// GetCalculatorsToRun resolves an --algo value. "all" returns every registered
// backend in sorted name order; any other value returns the single backend of
// that name, or nil if there is none.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == AlgoAll {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}

// ValidateAlgo reports whether algo names a registered backend or "all".
func ValidateAlgo(algo string, factory fibonacci.CalculatorFactory) error {
	if algo == AlgoAll {
		return nil
	}
	for _, name := range factory.List() {
		if name == algo {
			return nil
		}
	}
	return fmt.Errorf("unknown algorithm %q (available: all, %v)", algo, factory.List())
}
