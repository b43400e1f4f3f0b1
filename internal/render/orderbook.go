package render

import (
	"fmt"

	"stockdash/internal/domain"
)

// OrderBook renders the fixed-depth bid/ask ladder. It keeps the last
// rendered text per cell so a snapshot carrying no change is a no-op, and so
// the flash direction can be derived from the previously rendered value.
// All twenty rows exist at all times; missing data renders the placeholder.
type OrderBook struct {
	surface Surface
	flasher *Flasher

	// last rendered text per cell id; absent key = never painted
	rendered map[string]string
}

// NewOrderBook creates the ladder renderer and paints the placeholder grid.
func NewOrderBook(surface Surface, flasher *Flasher) *OrderBook {
	b := &OrderBook{
		surface:  surface,
		flasher:  flasher,
		rendered: make(map[string]string),
	}
	b.Reset()
	return b
}

// Reset clears all cell memos and repaints the placeholder grid. Called when
// a new symbol is selected: the next snapshot is a first paint and must not
// flash.
func (b *OrderBook) Reset() {
	b.rendered = make(map[string]string)
	for level := 1; level <= domain.BookDepth; level++ {
		for _, side := range []domain.Side{domain.Ask, domain.Bid} {
			b.surface.SetText(priceCellID(side, level), Placeholder)
			b.surface.SetText(volumeCellID(side, level), Placeholder)
		}
	}
}

// ApplySnapshot reconciles all twenty (level, side) cells against the
// snapshot. Unchanged cells produce no write; changed cells are rewritten
// and flashed by comparison against the previously rendered numeric value.
// A cell coming out of the placeholder state paints silently.
func (b *OrderBook) ApplySnapshot(snap *domain.BookSnapshot) {
	for i := 0; i < domain.BookDepth; i++ {
		b.applyQuote(&snap.Asks[i])
		b.applyQuote(&snap.Bids[i])
	}
}

func (b *OrderBook) applyQuote(q *domain.Quote) {
	priceText := Placeholder
	volumeText := Placeholder
	if !q.Empty {
		priceText = FormatDecimal(q.Price)
		volumeText = FormatInt(q.Volume)
	}
	b.applyCell(priceCellID(q.Side, q.Level), priceText)
	b.applyCell(volumeCellID(q.Side, q.Level), volumeText)
}

func (b *OrderBook) applyCell(id, text string) {
	prev, painted := b.rendered[id]
	if painted && prev == text {
		return // idempotent no-op
	}

	b.surface.SetText(id, text)
	b.rendered[id] = text

	// First paint of a cell (or a return from the placeholder) is silent.
	if !painted || prev == Placeholder || text == Placeholder {
		return
	}

	dir := Down
	if ParseRendered(text).GreaterThan(ParseRendered(prev)) {
		dir = Up
	}
	b.flasher.Pulse(id, dir)
}

func priceCellID(side domain.Side, level int) string {
	return fmt.Sprintf("%s-price-%d", side, level)
}

func volumeCellID(side domain.Side, level int) string {
	return fmt.Sprintf("%s-volume-%d", side, level)
}
