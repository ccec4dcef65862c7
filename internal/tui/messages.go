package tui

import (
	"time"

	"github.com/agbru/fibbridge/internal/metrics"
	"github.com/agbru/fibbridge/internal/sysmon"
)

// ProgressMsg carries aggregated progress of the running calculation.
type ProgressMsg struct {
	Generation      uint64
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// CalculationDoneMsg is returned by the calculation command.
type CalculationDoneMsg struct {
	Generation uint64
	Entry      HistoryEntry
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a host CPU/memory sample.
type SysStatsMsg sysmon.Stats

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg metrics.MemorySnapshot
