package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"stockdash/internal/event"
	"stockdash/internal/feed"
	"stockdash/internal/infra"
	"stockdash/internal/render"
)

// expireInterval is how often pending flash pulses are swept between
// messages.
const expireInterval = 100 * time.Millisecond

// ChannelRoute binds one feed channel to its handler set. Gen is shared with
// the channel's session: frames carrying a superseded generation are dropped
// without dispatch. Each channel has its own counter, so reconnecting the
// detail stream never invalidates heatmap frames or vice versa.
type ChannelRoute struct {
	Router *feed.Router
	Gen    *atomic.Uint64
}

// Dispatcher is the core single-threaded frame processor. All render state
// is mutated only from this goroutine, so the components need no locking.
type Dispatcher struct {
	inbox   chan *event.Frame
	routes  map[event.Channel]ChannelRoute
	flasher *render.Flasher
	metrics *infra.Metrics
}

// NewDispatcher creates a dispatcher over the given channel routes.
// flasher may be nil when the view has no animations.
func NewDispatcher(inboxSize int, routes map[event.Channel]ChannelRoute, flasher *render.Flasher) *Dispatcher {
	return &Dispatcher{
		inbox:   make(chan *event.Frame, inboxSize),
		routes:  routes,
		flasher: flasher,
		metrics: infra.GlobalMetrics,
	}
}

// Inbox returns the frame channel. Sessions send frames here.
func (d *Dispatcher) Inbox() chan<- *event.Frame {
	return d.inbox
}

// Run starts the main loop. This MUST be run in a single goroutine.
// Frames are processed strictly in delivery order; pulse expiry runs on a
// ticker between messages so the loop is never blocked on time.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("Dispatcher started (single-thread hotpath)")

	ticker := time.NewTicker(expireInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Dispatcher stopping...")
			return
		case f := <-d.inbox:
			d.processFrame(f)
		case <-ticker.C:
			if d.flasher != nil {
				d.flasher.Expire()
			}
		}
	}
}

// processFrame routes one frame. A panic in a handler is contained here:
// the frame is dropped and processing continues, since nothing in the
// render path is fatal to the process.
func (d *Dispatcher) processFrame(f *event.Frame) {
	defer event.ReleaseFrame(f)
	defer func() {
		if r := recover(); r != nil {
			d.metrics.RecordParseError()
			slog.Error("Handler panic recovered", slog.Any("panic", r), slog.Uint64("seq", f.Seq))
		}
	}()

	route, ok := d.routes[f.Channel]
	if !ok {
		d.metrics.RecordFrameDropped()
		return
	}

	// Stale-session filtering: the transport may deliver frames queued by a
	// connection that has since been replaced.
	if f.Gen != route.Gen.Load() {
		d.metrics.RecordFrameDropped()
		return
	}

	start := time.Now()
	route.Router.Route(f.Payload)
	d.metrics.RecordLatency(time.Since(start).Nanoseconds())
}
