package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"stockdash/internal/domain"
	"stockdash/internal/feed"
	"stockdash/internal/render"
)

const statusElementID = "connection-status"

// DetailView manages the per-symbol half of the dashboard: the order-book
// ladder, the trade tape and the price indicator, fed by one detail session.
// Switching symbols tears the old session down, resets all three components
// (so the next snapshot paints silently) and connects to the new stream.
type DetailView struct {
	mu      sync.RWMutex
	surface render.Surface
	book    *render.OrderBook
	tape    *render.TradeTape
	price   *render.PriceIndicator
	session domain.FeedSession
	current domain.SymbolEntry
}

// NewDetailView wires the three detail renderers over one surface.
func NewDetailView(surface render.Surface, flasher *render.Flasher, session domain.FeedSession) *DetailView {
	return &DetailView{
		surface: surface,
		book:    render.NewOrderBook(surface, flasher),
		tape:    render.NewTradeTape(surface),
		price:   render.NewPriceIndicator(surface, flasher),
		session: session,
	}
}

// SetTapeDepth overrides the number of visible tape rows.
func (v *DetailView) SetTapeDepth(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tape.SetCapacity(n)
}

// ShowStock switches the view to the given symbol. The previous stream is
// superseded before the new dial, so frames from the old session that are
// still in flight never repaint the new symbol's cells.
func (v *DetailView) ShowStock(ctx context.Context, entry domain.SymbolEntry) error {
	if entry.ShortCode == "" {
		return domain.ErrEmptyCode
	}

	v.mu.Lock()
	v.current = entry
	v.book.Reset()
	v.tape.Reset()
	v.price.Reset()
	v.surface.SetText("stock-title", entry.Name)
	v.mu.Unlock()

	if err := v.session.Connect(ctx, entry.ShortCode); err != nil {
		slog.Error("Detail stream connect failed",
			slog.String("code", entry.ShortCode), slog.Any("error", err))
		return err
	}
	return nil
}

// Close disconnects the detail stream.
func (v *DetailView) Close() {
	v.session.Disconnect()
}

// Current returns the symbol the view is showing.
func (v *DetailView) Current() domain.SymbolEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// SetStatus writes the connection status line.
func (v *DetailView) SetStatus(text string) {
	v.surface.SetText(statusElementID, text)
}

// Handlers returns the feed handlers for the detail channel. Called from the
// dispatch goroutine only.
func (v *DetailView) Handlers() feed.Handlers {
	return feed.Handlers{
		OnSnapshot: v.applySnapshot,
		OnTick:     v.applyTick,
	}
}

func (v *DetailView) applySnapshot(ev feed.SnapshotEvent) {
	v.book.ApplySnapshot(&ev.Snapshot)

	// During auction phases there are no executions; the indicator follows
	// the projected price carried on the book instead.
	if ev.Snapshot.HasProjected {
		price, ok := ev.Snapshot.CurrentPrice()
		if !ok {
			return
		}
		rate, _ := decimal.NewFromString(ev.Snapshot.ProjectedRate())
		v.price.Update(price, ev.Snapshot.ProjectedDiff, rate, ev.Snapshot.ProjectedSign)
	}
}

func (v *DetailView) applyTick(ev feed.TickEvent) {
	v.tape.Append(ev.Exec)
	v.price.Update(ev.Exec.Price, ev.Exec.Diff, ev.Exec.Rate, "")
}
