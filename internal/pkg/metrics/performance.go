package metrics

import (
	"runtime"
	"time"
)

// PerformanceMetrics captures what one attack run cost the process.
type PerformanceMetrics struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	BytesAlloc   uint64
	AllocObjects uint64
	GCCycles     uint32
}

// CapturePerformance runs fn and reports its wall time and allocation
// footprint.
func CapturePerformance(fn func()) *PerformanceMetrics {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	startAlloc := stats.TotalAlloc
	startGC := stats.NumGC

	perf := &PerformanceMetrics{
		StartTime: time.Now(),
	}

	fn()

	runtime.ReadMemStats(&stats)
	perf.EndTime = time.Now()
	perf.Duration = perf.EndTime.Sub(perf.StartTime)
	perf.BytesAlloc = stats.TotalAlloc - startAlloc
	perf.AllocObjects = stats.Mallocs - stats.Frees
	perf.GCCycles = stats.NumGC - startGC

	return perf
}
