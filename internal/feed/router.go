package feed

import (
	"log/slog"

	"stockdash/internal/infra"
)

// Handlers receives classified events. Nil members are skipped, so a view
// registers only the kinds it renders.
type Handlers struct {
	OnSnapshot     func(SnapshotEvent)
	OnTick         func(TickEvent)
	OnStockUpdate  func(StockUpdateEvent)
	OnThemeChanged func(ThemeChangedEvent)
	OnAck          func(AckEvent)
}

// Router classifies raw frames and fans each resulting event out to every
// matching handler. Malformed frames are logged and dropped; no error
// escapes the router boundary.
type Router struct {
	handlers Handlers
	metrics  *infra.Metrics
}

// NewRouter creates a router over the given handler set.
func NewRouter(handlers Handlers, metrics *infra.Metrics) *Router {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &Router{handlers: handlers, metrics: metrics}
}

// Route classifies one payload and dispatches all matching events in
// classification order. Returns the number of events dispatched.
func (r *Router) Route(payload []byte) int {
	events, err := Classify(payload)
	if err != nil {
		r.metrics.RecordParseError()
		slog.Debug("Dropping malformed frame", slog.Any("error", err), slog.Int("bytes", len(payload)))
		return 0
	}

	dispatched := 0
	for _, ev := range events {
		switch e := ev.(type) {
		case SnapshotEvent:
			if r.handlers.OnSnapshot != nil {
				r.handlers.OnSnapshot(e)
				dispatched++
			}
		case TickEvent:
			if r.handlers.OnTick != nil {
				r.handlers.OnTick(e)
				dispatched++
			}
		case StockUpdateEvent:
			if r.handlers.OnStockUpdate != nil {
				r.handlers.OnStockUpdate(e)
				dispatched++
			}
		case ThemeChangedEvent:
			if r.handlers.OnThemeChanged != nil {
				r.handlers.OnThemeChanged(e)
				dispatched++
			}
		case AckEvent:
			if r.handlers.OnAck != nil {
				r.handlers.OnAck(e)
				dispatched++
			}
		}
	}

	r.metrics.RecordFrameRouted()
	return dispatched
}
