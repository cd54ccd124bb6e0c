// Package metrics collects in-memory timing statistics of external tool probes.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// ProbeMetrics holds aggregated metrics for one external tool.
type ProbeMetrics struct {
	Count     int64
	Failures  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// ProbeSnapshot provides computed stats from raw metrics.
type ProbeSnapshot struct {
	Tool        string
	Count       int64
	Failures    int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Snapshot represents all probe statistics at a point in time.
type Snapshot struct {
	ElapsedSeconds float64
	Probes         []ProbeSnapshot // sorted by tool name
}

// Collector aggregates probe statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	probes    map[string]*ProbeMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		probes:    make(map[string]*ProbeMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for a tool.
// Caller must hold write lock.
func (c *Collector) getOrCreate(tool string) *ProbeMetrics {
	m, ok := c.probes[tool]
	if !ok {
		m = &ProbeMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.probes[tool] = m
	}
	return m
}

// RecordProbe records one invocation of an external tool.
func (c *Collector) RecordProbe(tool string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(tool)
	m.Count++
	m.TotalTime += duration
	if failed {
		m.Failures++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

func snapshotProbe(tool string, m *ProbeMetrics) ProbeSnapshot {
	return ProbeSnapshot{
		Tool:        tool,
		Count:       m.Count,
		Failures:    m.Failures,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{ElapsedSeconds: time.Since(c.startTime).Seconds()}
	for tool, m := range c.probes {
		if m.Count == 0 {
			continue
		}
		snap.Probes = append(snap.Probes, snapshotProbe(tool, m))
	}
	sort.Slice(snap.Probes, func(i, j int) bool { return snap.Probes[i].Tool < snap.Probes[j].Tool })
	return snap
}
