// Package metrics samples Go runtime memory statistics around a calculation.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta is the difference between two snapshots taken around a run.
type MemoryDelta struct {
	HeapAfter    uint64 // HeapAlloc of the later snapshot
	Allocated    uint64 // bytes allocated in between
	NumGC        uint32 // GC cycles completed in between
	PauseTotalNs uint64 // GC pause time accumulated in between
	PeakSys      uint64 // Sys of the later snapshot
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta returns what happened between before and after. Counters that went
// backwards (snapshots passed in the wrong order) yield zero.
func Delta(before, after MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAfter:    after.HeapAlloc,
		Allocated:    sub(after.TotalAlloc, before.TotalAlloc),
		NumGC:        uint32(sub(uint64(after.NumGC), uint64(before.NumGC))),
		PauseTotalNs: sub(after.PauseTotalNs, before.PauseTotalNs),
		PeakSys:      after.Sys,
	}
}

func sub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
