package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks render loop timing. Recording is lock-free so the frame
// function can call it every frame.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64
	driverErrors atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(math.MaxInt64)
	return m
}

// RecordFrame records the time spent drawing and updating one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDriverError counts a failed driver call.
func (m *Metrics) RecordDriverError() {
	m.driverErrors.Add(1)
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.frameCount.Load()

	var avg int64
	if count > 0 {
		avg = m.frameTotalNs.Load() / int64(count)
	}
	minNs := m.frameMinNs.Load()
	if minNs == math.MaxInt64 {
		minNs = 0
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		FrameCount:   count,
		AvgFrame:     time.Duration(avg),
		MinFrame:     time.Duration(minNs),
		MaxFrame:     time.Duration(m.frameMaxNs.Load()),
		LastFrame:    time.Duration(m.lastFrameNs.Load()),
		DriverErrors: m.driverErrors.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	FrameCount   uint64
	AvgFrame     time.Duration
	MinFrame     time.Duration
	MaxFrame     time.Duration
	LastFrame    time.Duration
	DriverErrors uint64
}

// FPS returns frames per second over the uptime.
func (s MetricsSnapshot) FPS() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.FrameCount) / s.Uptime.Seconds()
}

// Fields returns the snapshot as logger fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"frames":        s.FrameCount,
		"avg_frame":     s.AvgFrame,
		"min_frame":     s.MinFrame,
		"max_frame":     s.MaxFrame,
		"driver_errors": s.DriverErrors,
		"fps":           int(s.FPS()),
	}
}
