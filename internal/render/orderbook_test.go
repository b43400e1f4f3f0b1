package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockdash/internal/domain"
	"stockdash/internal/infra"
)

// countingSurface records SetText calls so no-op reconciliation is observable.
type countingSurface struct {
	*MemorySurface
	setTextCalls int
}

func (c *countingSurface) SetText(id, text string) {
	c.setTextCalls++
	c.MemorySurface.SetText(id, text)
}

func fullSnapshot(base int64) *domain.BookSnapshot {
	var snap domain.BookSnapshot
	for i := 0; i < domain.BookDepth; i++ {
		snap.Asks[i] = domain.Quote{
			Level:  i + 1,
			Side:   domain.Ask,
			Price:  decimal.NewFromInt(base + int64(i+1)*100),
			Volume: int64(1000 + i),
		}
		snap.Bids[i] = domain.Quote{
			Level:  i + 1,
			Side:   domain.Bid,
			Price:  decimal.NewFromInt(base - int64(i+1)*100),
			Volume: int64(2000 + i),
		}
	}
	return &snap
}

func newTestBook(t *testing.T) (*OrderBook, *countingSurface, *infra.Metrics, *time.Time) {
	t.Helper()
	surface := &countingSurface{MemorySurface: NewMemorySurface()}
	metrics := &infra.Metrics{}
	flasher := NewFlasher(surface, metrics)
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	flasher.now = func() time.Time { return now }
	book := NewOrderBook(surface, flasher)
	return book, surface, metrics, &now
}

func TestOrderBook_FirstPaintIsSilent(t *testing.T) {
	book, surface, metrics, _ := newTestBook(t)

	book.ApplySnapshot(fullSnapshot(70000))

	if got := metrics.Snapshot().FlashesFired; got != 0 {
		t.Errorf("first paint must not flash, got %d flashes", got)
	}
	for level := 1; level <= domain.BookDepth; level++ {
		if surface.Text(priceCellID(domain.Ask, level)) == Placeholder {
			t.Errorf("ask level %d still shows the placeholder", level)
		}
		if surface.Text(priceCellID(domain.Bid, level)) == Placeholder {
			t.Errorf("bid level %d still shows the placeholder", level)
		}
	}
}

func TestOrderBook_IdempotentReapply(t *testing.T) {
	book, surface, metrics, now := newTestBook(t)
	snap := fullSnapshot(70000)

	book.ApplySnapshot(snap)
	writes := surface.setTextCalls
	*now = now.Add(time.Second)

	book.ApplySnapshot(snap)

	if surface.setTextCalls != writes {
		t.Errorf("re-applying an identical snapshot wrote %d cells", surface.setTextCalls-writes)
	}
	if got := metrics.Snapshot().FlashesFired; got != 0 {
		t.Errorf("re-applying an identical snapshot fired %d flashes", got)
	}
}

func TestOrderBook_SingleCellChangeFlashesOnce(t *testing.T) {
	book, surface, metrics, now := newTestBook(t)

	book.ApplySnapshot(fullSnapshot(70000))
	*now = now.Add(time.Second)

	snap := fullSnapshot(70000)
	snap.Asks[0].Price = snap.Asks[0].Price.Add(decimal.NewFromInt(100))
	book.ApplySnapshot(snap)

	if got := metrics.Snapshot().FlashesFired; got != 1 {
		t.Fatalf("expected exactly one flash, got %d", got)
	}
	if !surface.HasClass(priceCellID(domain.Ask, 1), ClassChangedUp) {
		t.Error("raised ask price must flash up")
	}
}

func TestOrderBook_DownwardChangeFlashesDown(t *testing.T) {
	book, surface, _, now := newTestBook(t)

	book.ApplySnapshot(fullSnapshot(70000))
	*now = now.Add(time.Second)

	snap := fullSnapshot(70000)
	snap.Bids[0].Price = snap.Bids[0].Price.Sub(decimal.NewFromInt(100))
	book.ApplySnapshot(snap)

	if !surface.HasClass(priceCellID(domain.Bid, 1), ClassChangedDown) {
		t.Error("lowered bid price must flash down")
	}
}

func TestOrderBook_MissingLevelRendersPlaceholder(t *testing.T) {
	book, surface, metrics, now := newTestBook(t)

	snap := fullSnapshot(70000)
	snap.Asks[9] = domain.Quote{Level: 10, Side: domain.Ask, Empty: true}
	book.ApplySnapshot(snap)

	if surface.Text(priceCellID(domain.Ask, 10)) != Placeholder {
		t.Error("missing level must render the placeholder, never an absent row")
	}

	// Level reappearing out of the placeholder state paints silently.
	*now = now.Add(time.Second)
	book.ApplySnapshot(fullSnapshot(70000))
	if surface.HasClass(priceCellID(domain.Ask, 10), ClassChangedUp) {
		t.Error("a cell leaving the placeholder state must not flash")
	}
	if got := metrics.Snapshot().FlashesFired; got != 0 {
		t.Errorf("expected no flashes, got %d", got)
	}
}

func TestOrderBook_ResetSilencesNextPaint(t *testing.T) {
	book, _, metrics, now := newTestBook(t)

	book.ApplySnapshot(fullSnapshot(70000))
	*now = now.Add(time.Second)
	book.Reset()
	book.ApplySnapshot(fullSnapshot(71000))

	if got := metrics.Snapshot().FlashesFired; got != 0 {
		t.Errorf("first paint after a reset must be silent, got %d flashes", got)
	}
}
