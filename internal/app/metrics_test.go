package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("expected 0 frame count, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("expected 0 min frame time (sentinel handled), got %d", snapshot.MinFrameTimeNs)
	}
}

func TestMetrics_RecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(5 * time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 3 {
		t.Errorf("expected 3 frames, got %d", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != int64(5*time.Millisecond) {
		t.Errorf("expected min 5ms, got %d ns", snapshot.MinFrameTimeNs)
	}
	if snapshot.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("expected max 20ms, got %d ns", snapshot.MaxFrameTimeNs)
	}
	if snapshot.LastFrameNs != int64(5*time.Millisecond) {
		t.Errorf("expected last 5ms, got %d ns", snapshot.LastFrameNs)
	}
	if snapshot.AvgFrameTimeNs != int64(35*time.Millisecond)/3 {
		t.Errorf("AvgFrameTimeNs = %d, want %d", snapshot.AvgFrameTimeNs, int64(35*time.Millisecond)/3)
	}
}

func TestMetrics_RecordPaint(t *testing.T) {
	m := NewMetrics()

	m.RecordPaint(true, 4*time.Millisecond)
	m.RecordPaint(false, 1*time.Millisecond)
	m.RecordPaint(false, 1*time.Millisecond)

	snapshot := m.Snapshot()
	if snapshot.FullPaints != 1 {
		t.Errorf("FullPaints = %d, want 1", snapshot.FullPaints)
	}
	if snapshot.DeltaPaints != 2 {
		t.Errorf("DeltaPaints = %d, want 2", snapshot.DeltaPaints)
	}
	if snapshot.AvgPaintNs != int64(2*time.Millisecond) {
		t.Errorf("AvgPaintNs = %d, want %d", snapshot.AvgPaintNs, int64(2*time.Millisecond))
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordDroppedFrame()
	m.RecordDroppedFrame()
	m.RecordResize()
	m.RecordReload()
	m.RecordReload()
	m.RecordReload()

	snapshot := m.Snapshot()
	if snapshot.DroppedFrames != 2 {
		t.Errorf("expected 2 dropped frames, got %d", snapshot.DroppedFrames)
	}
	if snapshot.Resizes != 1 {
		t.Errorf("Resizes = %d, want 1", snapshot.Resizes)
	}
	if snapshot.Reloads != 3 {
		t.Errorf("Reloads = %d, want 3", snapshot.Reloads)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordPaint(true, time.Millisecond)
	m.RecordDroppedFrame()
	m.Reset()

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("expected 0 frames after reset, got %d", snapshot.FrameCount)
	}
	if snapshot.FullPaints != 0 {
		t.Errorf("expected 0 full paints after reset, got %d", snapshot.FullPaints)
	}
	if snapshot.DroppedFrames != 0 {
		t.Errorf("expected 0 dropped frames after reset, got %d", snapshot.DroppedFrames)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("expected 0 min frame time after reset, got %d", snapshot.MinFrameTimeNs)
	}
}

func TestMetricsSnapshot_Rates(t *testing.T) {
	tests := []struct {
		name     string
		snapshot MetricsSnapshot
		fps      float64
		drop     float64
	}{
		{"empty", MetricsSnapshot{}, 0, 0},
		{"60fps", MetricsSnapshot{AvgFrameTimeNs: int64(time.Second / 50), FrameCount: 10}, 50, 0},
		{"drops", MetricsSnapshot{AvgFrameTimeNs: int64(time.Second), FrameCount: 4, DroppedFrames: 1}, 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snapshot.AvgFPS(); got != tt.fps {
				t.Errorf("AvgFPS() = %v, want %v", got, tt.fps)
			}
			if got := tt.snapshot.DropRate(); got != tt.drop {
				t.Errorf("DropRate() = %v, want %v", got, tt.drop)
			}
		})
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordFrame(time.Duration(i*100+j+1) * time.Microsecond)
			}
		}(i)
	}
	wg.Wait()

	snapshot := m.Snapshot()
	if snapshot.FrameCount != 800 {
		t.Errorf("FrameCount = %d, want 800", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != int64(time.Microsecond) {
		t.Errorf("MinFrameTimeNs = %d, want %d", snapshot.MinFrameTimeNs, int64(time.Microsecond))
	}
	if snapshot.MaxFrameTimeNs != int64(800*time.Microsecond) {
		t.Errorf("MaxFrameTimeNs = %d, want %d", snapshot.MaxFrameTimeNs, int64(800*time.Microsecond))
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)

	if elapsed := timer.Stop(); elapsed < 2*time.Millisecond {
		t.Errorf("Stop() = %v, want >= 2ms", elapsed)
	}
	if elapsed := timer.Elapsed(); elapsed > time.Second {
		t.Errorf("Elapsed() after Stop = %v, want a fresh start", elapsed)
	}
}
