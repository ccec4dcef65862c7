// Package sysmon samples host CPU and memory usage for the TUI header and
// the HTTP health report.
package sysmon

import (
	"context"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide usage snapshot. Percentages are in [0, 100].
type Stats struct {
	CPUPercent float64
	MemPercent float64
	// MemTotal is the installed memory in bytes, 0 when unknown.
	MemTotal uint64
}

// Sample returns a snapshot using a background context.
func Sample() Stats {
	return SampleContext(context.Background())
}

// SampleContext returns a snapshot. CPU usage is the delta since the previous
// call, so the first sample of a process may read 0. Fields that cannot be
// read stay zero.
func SampleContext(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
		s.MemTotal = vm.Total
	}
	return s
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, 100)
}
