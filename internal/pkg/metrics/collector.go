package metrics

import (
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"runtime"
	"sync"
	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/pkg/debug"
	"time"
)

const memoryPressurePct = 90

type sessionMetrics struct {
	domain.ResourceMetrics
	startedAt time.Time
}

// Collector samples CPU and memory usage for each running attack session and
// folds in attempt counters reported by the attack runner.
type Collector struct {
	mu             sync.RWMutex
	sessions       map[string]*sessionMetrics
	updateInterval time.Duration
}

func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	return &Collector{
		sessions:       make(map[string]*sessionMetrics),
		updateInterval: interval,
	}
}

func (c *Collector) StartCollection(sessionID string) {
	now := time.Now()
	c.mu.Lock()
	c.sessions[sessionID] = &sessionMetrics{
		ResourceMetrics: domain.ResourceMetrics{LastUpdated: now},
		startedAt:       now,
	}
	c.mu.Unlock()

	go c.collect(sessionID)
}

func (c *Collector) StopCollection(sessionID string) {
	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()
}

// GetMetrics returns a copy of the session's latest sample, so callers never
// observe a half-written update.
func (c *Collector) GetMetrics(sessionID string) (domain.ResourceMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, exists := c.sessions[sessionID]; exists {
		return s.ResourceMetrics, true
	}
	return domain.ResourceMetrics{}, false
}

func (c *Collector) collect(sessionID string) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	for {
		c.mu.RLock()
		_, exists := c.sessions[sessionID]
		c.mu.RUnlock()
		if !exists {
			return
		}

		// Interval 0 compares against the previous sample instead of
		// blocking for a fresh measurement window.
		cpuUsage, _ := cpu.Percent(0, false)
		vm, _ := mem.VirtualMemory()

		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		if vm != nil && vm.UsedPercent > memoryPressurePct {
			debug.Warning("system memory at %.1f%% during session %s", vm.UsedPercent, sessionID)
		}

		c.mu.Lock()
		if s, ok := c.sessions[sessionID]; ok {
			if len(cpuUsage) > 0 {
				s.CPUUsage = cpuUsage[0]
			}
			s.MemoryUsageMB = int64(stats.Alloc / 1024 / 1024)
			s.LastUpdated = time.Now()
		}
		c.mu.Unlock()

		<-ticker.C
	}
}

// UpdateAttempts records the attempt counter and worker count for a session.
// The rate is measured against the session start, not the last sample.
func (c *Collector) UpdateAttempts(sessionID string, attempts int64, activeWorkers int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, exists := c.sessions[sessionID]
	if !exists {
		return
	}

	s.TotalAttempts = attempts
	s.ActiveWorkers = activeWorkers
	if elapsed := time.Since(s.startedAt).Seconds(); elapsed > 0 {
		s.AttemptsPerSec = int64(float64(attempts) / elapsed)
	}
}
