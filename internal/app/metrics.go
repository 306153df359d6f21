package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks session performance metrics.
type Metrics struct {
	// Frame timing: scene update plus paint
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	lastFrameNs   atomic.Int64
	droppedFrames atomic.Uint64

	// Paint timing
	fullPaints   atomic.Uint64
	deltaPaints  atomic.Uint64
	paintTotalNs atomic.Int64

	// Device events
	resizes atomic.Uint64
	reloads atomic.Uint64

	startNs atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// RecordFrame records frame timing.
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

// RecordDroppedFrame records a frame that overran its delay.
func (m *Metrics) RecordDroppedFrame() {
	m.droppedFrames.Add(1)
}

// RecordPaint records one paint of the grid to the backend.
func (m *Metrics) RecordPaint(full bool, duration time.Duration) {
	if full {
		m.fullPaints.Add(1)
	} else {
		m.deltaPaints.Add(1)
	}
	m.paintTotalNs.Add(duration.Nanoseconds())
}

// RecordResize records a device resize.
func (m *Metrics) RecordResize() {
	m.resizes.Add(1)
}

// RecordReload records a configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	full := m.fullPaints.Load()
	delta := m.deltaPaints.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgPaintNs int64
	if paints := full + delta; paints > 0 {
		avgPaintNs = m.paintTotalNs.Load() / int64(paints)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == math.MaxInt64 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Duration(time.Now().UnixNano() - m.startNs.Load()),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		DroppedFrames:  m.droppedFrames.Load(),
		FullPaints:     full,
		DeltaPaints:    delta,
		AvgPaintNs:     avgPaintNs,
		Resizes:        m.resizes.Load(),
		Reloads:        m.reloads.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(math.MaxInt64)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.droppedFrames.Store(0)
	m.fullPaints.Store(0)
	m.deltaPaints.Store(0)
	m.paintTotalNs.Store(0)
	m.resizes.Store(0)
	m.reloads.Store(0)
	m.startNs.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	DroppedFrames  uint64
	FullPaints     uint64
	DeltaPaints    uint64
	AvgPaintNs     int64
	Resizes        uint64
	Reloads        uint64
}

// AvgFPS returns the average frames per second.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// DropRate returns the percentage of dropped frames.
func (s MetricsSnapshot) DropRate() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.DroppedFrames) / float64(s.FrameCount) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
