package service

import (
	"context"
	"log/slog"

	"stockdash/internal/domain"
	"stockdash/internal/feed"
	"stockdash/internal/render"
)

// HeatmapView manages the theme heatmap: the main grid and its mini-panel
// mirror, fed by the shared stream. Structural theme changes are not diffed
// in place; the view asks its host to reload via the callback.
type HeatmapView struct {
	heatmap *render.Heatmap
	session domain.FeedSession
}

// NewHeatmapView wires the heatmap renderer over the shared session.
// onReload fires when the server announces a theme membership change.
func NewHeatmapView(surface render.Surface, session domain.FeedSession, onReload func(reason string)) *HeatmapView {
	return &HeatmapView{
		heatmap: render.NewHeatmap(surface, onReload),
		session: session,
	}
}

// Seed paints the initial block set. Must run before Start so updates for
// tracked codes have cells to land on.
func (v *HeatmapView) Seed(blocks []domain.ThemeBlock) {
	v.heatmap.Seed(blocks)
}

// Start connects the shared stream. The session subscribes its tracked codes
// on open.
func (v *HeatmapView) Start(ctx context.Context) error {
	return v.session.Connect(ctx, "")
}

// Close disconnects the shared stream.
func (v *HeatmapView) Close() {
	v.session.Disconnect()
}

// Handlers returns the feed handlers for the shared channel.
func (v *HeatmapView) Handlers() feed.Handlers {
	return feed.Handlers{
		OnStockUpdate: func(ev feed.StockUpdateEvent) {
			v.heatmap.ApplyUpdate(ev.Block.Code, ev.Block.Rate, ev.Block.Volume)
		},
		OnThemeChanged: func(ev feed.ThemeChangedEvent) {
			v.heatmap.HandleThemeChanged(ev.Message)
		},
		OnAck: func(ev feed.AckEvent) {
			slog.Debug("Subscription acknowledged", slog.String("code", ev.Code))
		},
	}
}
