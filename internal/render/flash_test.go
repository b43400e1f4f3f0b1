package render

import (
	"testing"
	"time"

	"stockdash/internal/infra"
)

func newTestFlasher(surface Surface) (*Flasher, *time.Time) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	f := NewFlasher(surface, &infra.Metrics{})
	f.now = func() time.Time { return now }
	return f, &now
}

func TestFlasher_CooldownSuppresses(t *testing.T) {
	surface := NewMemorySurface()
	f, now := newTestFlasher(surface)

	if !f.Pulse("cell", Up) {
		t.Fatal("first pulse should apply")
	}
	*now = now.Add(50 * time.Millisecond)
	if f.Pulse("cell", Down) {
		t.Error("pulse within 100ms must be dropped")
	}
	if !surface.HasClass("cell", ClassChangedUp) {
		t.Error("suppressed pulse must not disturb the running one")
	}

	*now = now.Add(60 * time.Millisecond) // 110ms after the first
	if !f.Pulse("cell", Down) {
		t.Error("pulse past the cooldown should apply")
	}
	if surface.HasClass("cell", ClassChangedUp) || !surface.HasClass("cell", ClassChangedDown) {
		t.Error("new pulse must swap the direction class")
	}
}

func TestFlasher_IndependentElements(t *testing.T) {
	surface := NewMemorySurface()
	f, _ := newTestFlasher(surface)

	if !f.Pulse("a", Up) || !f.Pulse("b", Down) {
		t.Error("cooldown is per element, not global")
	}
}

func TestFlasher_ExpireRemovesClass(t *testing.T) {
	surface := NewMemorySurface()
	f, now := newTestFlasher(surface)

	f.Pulse("cell", Up)
	f.Expire()
	if !surface.HasClass("cell", ClassChangedUp) {
		t.Fatal("class must survive until the pulse runs its course")
	}

	*now = now.Add(600 * time.Millisecond)
	f.Expire()
	if surface.HasClass("cell", ClassChangedUp) {
		t.Error("class must be removed after expiry")
	}
}

func TestFlasher_NoOverlappingPulses(t *testing.T) {
	surface := NewMemorySurface()
	f, now := newTestFlasher(surface)

	f.Pulse("cell", Up)
	*now = now.Add(150 * time.Millisecond)
	f.Pulse("cell", Down)

	classes := surface.ClassList("cell")
	if len(classes) != 1 {
		t.Errorf("exactly one direction class may be applied, got %v", classes)
	}
}
