package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	framesRouted      atomic.Uint64
	framesDropped     atomic.Uint64 // inbox overflow or stale generation
	parseErrors       atomic.Uint64
	flashesFired      atomic.Uint64
	flashesSuppressed atomic.Uint64

	// Latency tracking (frame receipt -> handlers done)
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// NewMetrics returns an isolated instance, mainly for tests.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordFrameRouted records one frame fully routed.
func (m *Metrics) RecordFrameRouted() {
	m.framesRouted.Add(1)
}

// RecordFrameDropped records a frame lost to backpressure or staleness.
func (m *Metrics) RecordFrameDropped() {
	m.framesDropped.Add(1)
}

// RecordParseError records a malformed frame.
func (m *Metrics) RecordParseError() {
	m.parseErrors.Add(1)
}

// RecordFlash records an applied pulse.
func (m *Metrics) RecordFlash() {
	m.flashesFired.Add(1)
}

// RecordFlashSuppressed records a pulse dropped by the cooldown.
func (m *Metrics) RecordFlashSuppressed() {
	m.flashesSuppressed.Add(1)
}

// RecordLatency records one frame's processing latency.
func (m *Metrics) RecordLatency(latencyNs int64) {
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	FramesRouted      uint64
	FramesDropped     uint64
	ParseErrors       uint64
	FlashesFired      uint64
	FlashesSuppressed uint64
	AvgLatencyNs      int64
	ActiveConnections int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		FramesRouted:      m.framesRouted.Load(),
		FramesDropped:     m.framesDropped.Load(),
		ParseErrors:       m.parseErrors.Load(),
		FlashesFired:      m.flashesFired.Load(),
		FlashesSuppressed: m.flashesSuppressed.Load(),
		AvgLatencyNs:      avgLatency,
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.framesRouted.Store(0)
	m.framesDropped.Store(0)
	m.parseErrors.Store(0)
	m.flashesFired.Store(0)
	m.flashesSuppressed.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.activeConnections.Store(0)
}
