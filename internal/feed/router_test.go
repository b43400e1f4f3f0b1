package feed

import (
	"strings"
	"testing"

	"stockdash/internal/infra"
	"stockdash/internal/render"
)

func TestRouter_FansOutMultiMatch(t *testing.T) {
	var snapshots, ticks int
	router := NewRouter(Handlers{
		OnSnapshot: func(SnapshotEvent) { snapshots++ },
		OnTick:     func(TickEvent) { ticks++ },
	}, infra.NewMetrics())

	payload := fullBookPayload()
	combined := payload[:len(payload)-1] + `,"STCK_PRPR":"70500","STCK_CNTG_HOUR":"093015"}`

	if n := router.Route([]byte(combined)); n != 2 {
		t.Fatalf("dispatched = %d, want 2", n)
	}
	if snapshots != 1 || ticks != 1 {
		t.Errorf("snapshots=%d ticks=%d", snapshots, ticks)
	}
}

func TestRouter_SkipsNilHandlers(t *testing.T) {
	router := NewRouter(Handlers{}, infra.NewMetrics())
	if n := router.Route([]byte(fullBookPayload())); n != 0 {
		t.Errorf("dispatched = %d with no handlers registered", n)
	}
}

func TestRouter_MalformedFrameIsDropped(t *testing.T) {
	metrics := infra.NewMetrics()
	called := false
	router := NewRouter(Handlers{
		OnTick: func(TickEvent) { called = true },
	}, metrics)

	if n := router.Route([]byte(`{broken`)); n != 0 {
		t.Fatalf("dispatched = %d for malformed input", n)
	}
	if called {
		t.Error("no handler may run for a malformed frame")
	}
	if metrics.Snapshot().ParseErrors != 1 {
		t.Error("parse error must be counted")
	}
}

// TestRouter_BookRenderFlow drives the order book through the router the way
// the dispatcher does: a fresh symbol gets a silent full paint, then a single
// changed level produces exactly one repaint and one flash.
func TestRouter_BookRenderFlow(t *testing.T) {
	surface := render.NewMemorySurface()
	metrics := infra.NewMetrics()
	flasher := render.NewFlasher(surface, metrics)
	book := render.NewOrderBook(surface, flasher)

	router := NewRouter(Handlers{
		OnSnapshot: func(ev SnapshotEvent) { book.ApplySnapshot(&ev.Snapshot) },
	}, metrics)

	if n := router.Route([]byte(fullBookPayload())); n != 1 {
		t.Fatalf("dispatched = %d", n)
	}
	if got := surface.Text("ask-price-1"); got != "70,100" {
		t.Errorf("ask-price-1 = %q", got)
	}
	if got := surface.Text("bid-volume-10"); got != "2,010" {
		t.Errorf("bid-volume-10 = %q", got)
	}
	if metrics.Snapshot().FlashesFired != 0 {
		t.Error("first paint must not flash")
	}

	// Identical snapshot again: memo absorbs everything.
	router.Route([]byte(fullBookPayload()))
	if metrics.Snapshot().FlashesFired != 0 {
		t.Error("an unchanged snapshot must not flash")
	}

	// One level moves up.
	changed := strings.Replace(fullBookPayload(), `"ASKP1":"70100"`, `"ASKP1":"70150"`, 1)
	router.Route([]byte(changed))

	if got := surface.Text("ask-price-1"); got != "70,150" {
		t.Errorf("ask-price-1 after change = %q", got)
	}
	if metrics.Snapshot().FlashesFired != 1 {
		t.Errorf("flashes = %d, want exactly 1", metrics.Snapshot().FlashesFired)
	}
	if !surface.HasClass("ask-price-1", render.ClassChangedUp) {
		t.Error("upward move must carry the up flash class")
	}
}
