package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records a point-in-time snapshot of execution time and memory
// allocation, for reporting what a given pass cost.
type PerfStats struct {
	start time.Time
	// Total bytes allocated at the start
	allocated uint64
	// Garbage collection cycles completed at the start
	cycles uint32
}

// NewPerfStats takes a snapshot of the current time and allocation state.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Log reports the time and memory consumed since this snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	elapsed := time.Since(p.start).Seconds()
	alloc := (m.TotalAlloc - p.allocated) / 1024 / 1024
	cycles := m.NumGC - p.cycles
	//
	log.Debugf("%s took %0.2fs using %v Mb (%v GC events)", prefix, elapsed, alloc, cycles)
}
