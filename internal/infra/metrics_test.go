package infra

import (
	"testing"
)

func TestMetrics_RecordLatency(t *testing.T) {
	m := &Metrics{}

	m.RecordLatency(1000)
	m.RecordLatency(2000)
	m.RecordLatency(3000)

	snap := m.Snapshot()

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordFrameRouted()
	m.RecordFrameRouted()
	m.RecordFrameDropped()
	m.RecordParseError()
	m.RecordFlash()
	m.RecordFlashSuppressed()

	snap := m.Snapshot()
	if snap.FramesRouted != 2 {
		t.Errorf("Expected 2 frames routed, got %d", snap.FramesRouted)
	}
	if snap.FramesDropped != 1 {
		t.Errorf("Expected 1 frame dropped, got %d", snap.FramesDropped)
	}
	if snap.ParseErrors != 1 {
		t.Errorf("Expected 1 parse error, got %d", snap.ParseErrors)
	}
	if snap.FlashesFired != 1 || snap.FlashesSuppressed != 1 {
		t.Errorf("Expected 1 flash fired and 1 suppressed, got %d/%d", snap.FlashesFired, snap.FlashesSuppressed)
	}
}

func TestMetrics_Connections(t *testing.T) {
	m := &Metrics{}

	m.IncrementConnections()
	m.IncrementConnections()
	m.IncrementConnections()

	snap := m.Snapshot()
	if snap.ActiveConnections != 3 {
		t.Errorf("Expected 3 connections, got %d", snap.ActiveConnections)
	}

	m.DecrementConnections()
	snap = m.Snapshot()
	if snap.ActiveConnections != 2 {
		t.Errorf("Expected 2 connections, got %d", snap.ActiveConnections)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordFrameRouted()
	m.RecordParseError()
	m.IncrementConnections()

	m.Reset()
	snap := m.Snapshot()

	if snap.FramesRouted != 0 {
		t.Error("Expected 0 frames after reset")
	}
	if snap.ParseErrors != 0 {
		t.Error("Expected 0 parse errors after reset")
	}
	if snap.ActiveConnections != 0 {
		t.Error("Expected 0 connections after reset")
	}
}
