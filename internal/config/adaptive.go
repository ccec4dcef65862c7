package config

import "github.com/agbru/fibbridge/internal/fibonacci"

// Check interval resolution chain (highest priority first):
//   1. --check-interval
//   2. FIBBRIDGE_CHECK_INTERVAL
//   3. Estimate from n (this file)

// ApplyAdaptiveDefaults fills settings left at zero with values derived from
// the requested index. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = EstimateCheckInterval(cfg.N)
	}
	return cfg
}

// EstimateCheckInterval picks a cancellation check interval for F(n).
//
// One step of the recurrence costs one addition over roughly
// n*log2(phi)/64 words, so late steps of a large n are much slower than the
// early ones. Shrinking the interval as n grows keeps the reaction time to a
// timeout roughly constant.
func EstimateCheckInterval(n uint64) uint64 {
	words := uint64(float64(n)*fibonacci.FibonacciGrowthFactor)/64 + 1
	switch {
	case words <= 1<<6:
		return 1 << 16
	case words <= 1<<10:
		return 1 << 14
	case words <= 1<<14:
		return fibonacci.DefaultCheckInterval
	case words <= 1<<17:
		return 1 << 10
	default:
		return 1 << 8
	}
}
