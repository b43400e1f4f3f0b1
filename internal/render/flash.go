package render

import (
	"time"

	"stockdash/internal/infra"
)

// Flash direction class names, matched by the host stylesheet.
const (
	ClassChangedUp   = "changed-up"
	ClassChangedDown = "changed-down"
)

// Direction of a value change.
type Direction int

const (
	Up Direction = iota
	Down
)

const (
	// defaultCooldown suppresses re-triggering per element. High-frequency
	// updates inside this window coalesce into a single visible pulse.
	defaultCooldown = 100 * time.Millisecond
	// defaultPulseTTL is how long the direction class stays applied. The
	// host animation is shorter; expiry is time-based to stay host-agnostic.
	defaultPulseTTL = 500 * time.Millisecond
)

type pulseState struct {
	lastPulse time.Time
	class     string
	deadline  time.Time
}

// Flasher drives the transient "just changed" highlight on surface elements.
// Single-threaded: Pulse and Expire must run on the engine goroutine.
type Flasher struct {
	surface  Surface
	metrics  *infra.Metrics
	cooldown time.Duration
	ttl      time.Duration
	states   map[string]*pulseState

	now func() time.Time // injectable for tests
}

// NewFlasher creates a flash controller over the surface.
func NewFlasher(surface Surface, metrics *infra.Metrics) *Flasher {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &Flasher{
		surface:  surface,
		metrics:  metrics,
		cooldown: defaultCooldown,
		ttl:      defaultPulseTTL,
		states:   make(map[string]*pulseState),
		now:      time.Now,
	}
}

// SetCooldown overrides the suppression window.
func (f *Flasher) SetCooldown(d time.Duration) {
	if d > 0 {
		f.cooldown = d
	}
}

// Pulse applies the direction class to the element. A pulse within the
// cooldown window of the previous one on the same element is dropped.
// Returns whether the pulse was applied.
func (f *Flasher) Pulse(id string, dir Direction) bool {
	now := f.now()

	st, ok := f.states[id]
	if ok && now.Sub(st.lastPulse) < f.cooldown {
		f.metrics.RecordFlashSuppressed()
		return false
	}
	if !ok {
		st = &pulseState{}
		f.states[id] = st
	}

	class := ClassChangedUp
	if dir == Down {
		class = ClassChangedDown
	}

	// Remove both classes before reapplying so the host registers a fresh
	// animation even when the direction repeats. This is the class-swap
	// analog of a DOM reflow flush.
	f.surface.RemoveClass(id, ClassChangedUp)
	f.surface.RemoveClass(id, ClassChangedDown)
	f.surface.AddClass(id, class)

	st.lastPulse = now
	st.class = class
	st.deadline = now.Add(f.ttl)
	f.metrics.RecordFlash()
	return true
}

// Expire removes direction classes whose pulse has run its course. Called
// periodically from the engine loop between messages.
func (f *Flasher) Expire() {
	now := f.now()
	for id, st := range f.states {
		if st.class == "" || now.Before(st.deadline) {
			continue
		}
		f.surface.RemoveClass(id, st.class)
		st.class = ""
	}
}
