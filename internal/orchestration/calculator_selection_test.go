package orchestration

import (
	"testing"

	"github.com/agbru/fibbridge/internal/fibonacci"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := fibonacci.GlobalFactory()

	t.Run("Single algorithm returns one calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("words", factory)
		if len(calculators) != 1 {
			t.Fatalf("Expected 1 calculator, got %d", len(calculators))
		}
		if calculators[0].Name() != "Iterative (word vector)" {
			t.Errorf("unexpected calculator %q", calculators[0].Name())
		}
	})

	t.Run("All algorithms returns multiple calculators", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun(AlgoAll, factory)
		if len(calculators) < 2 {
			t.Errorf("Expected at least 2 calculators for 'all', got %d", len(calculators))
		}
	})

	t.Run("Unknown algorithm", func(t *testing.T) {
		t.Parallel()
		if calculators := GetCalculatorsToRun("matrix", factory); calculators != nil {
			t.Errorf("Expected nil, got %d calculators", len(calculators))
		}
	})
}

func TestValidateAlgo(t *testing.T) {
	t.Parallel()
	factory := fibonacci.GlobalFactory()
	for _, algo := range []string{"all", "big", "words"} {
		if err := ValidateAlgo(algo, factory); err != nil {
			t.Errorf("ValidateAlgo(%q) = %v", algo, err)
		}
	}
	if err := ValidateAlgo("fast", factory); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
