// Package memory estimates and controls the memory used by a calculation.
package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/fibbridge/internal/format"
)

const (
	// fibonacciGrowthFactor is log2(phi). Kept local to avoid an import cycle
	// with the fibonacci package.
	fibonacciGrowthFactor = 0.69424
	// decimalGrowthFactor is log10(phi).
	decimalGrowthFactor = 0.20898764
	// accumulators is the number of live integers in the linear loop
	// (a, b and the spare that receives a+b).
	accumulators = 3
	// baseOverhead covers the runtime and the process itself.
	baseOverhead = 8 << 20
)

// Estimate is a rough breakdown of the memory a run of F(n) needs.
type Estimate struct {
	// ResultBits is the approximate bit length of F(n).
	ResultBits uint64
	// AccumulatorBytes is the storage for the rotating accumulators.
	AccumulatorBytes uint64
	// DecimalBytes is the storage for the decimal rendering of the result.
	DecimalBytes uint64
	// TotalBytes includes a fixed runtime overhead.
	TotalBytes uint64
}

// EstimateMemoryUsage estimates the peak memory used to compute and print F(n).
func EstimateMemoryUsage(n uint64) Estimate {
	bits := uint64(float64(n)*fibonacciGrowthFactor) + 1
	words := bits/64 + 1
	accBytes := words * 8 * accumulators
	// Rendering needs the string plus a scratch copy of the words.
	decBytes := uint64(float64(n)*decimalGrowthFactor) + 1 + words*8
	return Estimate{
		ResultBits:       bits,
		AccumulatorBytes: accBytes,
		DecimalBytes:     decBytes,
		TotalBytes:       accBytes + decBytes + baseOverhead,
	}
}

// FormatMemoryEstimate renders the total of an estimate.
func FormatMemoryEstimate(e Estimate) string {
	return format.FormatBytes(e.TotalBytes)
}

// ParseMemoryLimit parses sizes such as "512M", "8G", "1.5GB", "64KiB" or a
// plain byte count. Units are binary.
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "IB"), "B")
	if s == "" {
		return 0, fmt.Errorf("invalid memory limit")
	}

	multiplier := uint64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1 << 10
	case 'M':
		multiplier = 1 << 20
	case 'G':
		multiplier = 1 << 30
	case 'T':
		multiplier = 1 << 40
	}
	if multiplier != 1 {
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid memory limit %q", s)
	}
	return uint64(value * float64(multiplier)), nil
}
