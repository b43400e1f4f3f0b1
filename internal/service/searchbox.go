package service

import (
	"strconv"
	"sync"

	"stockdash/internal/domain"
	"stockdash/internal/render"
	"stockdash/internal/search"
)

const activeSuggestionClass = "active"

// SearchBox drives the symbol autocomplete: it renders the candidate list for
// the current query and tracks the keyboard cursor over it. Committing hands
// the chosen entry to onSelect (typically DetailView.ShowStock).
type SearchBox struct {
	mu      sync.Mutex
	surface render.Surface
	index   *search.Index
	cursor  *search.Cursor
	limit   int

	query   string
	results []domain.SymbolEntry
}

// NewSearchBox creates the autocomplete controller. A nil index (catalog
// unavailable) degrades to free-text entry: queries render nothing and only
// exact codes typed by the user resolve.
func NewSearchBox(surface render.Surface, index *search.Index, limit int) *SearchBox {
	if limit <= 0 {
		limit = search.DefaultQueryLimit
	}
	return &SearchBox{
		surface: surface,
		index:   index,
		cursor:  search.NewCursor(0),
		limit:   limit,
	}
}

// SetQuery re-runs the match and repaints the candidate list. The cursor
// resets; navigation state never survives a text change.
func (b *SearchBox) SetQuery(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.query = text
	if b.index == nil || text == "" {
		b.results = nil
	} else {
		b.results = b.index.Query(text, b.limit)
	}
	b.cursor.Reset(len(b.results))
	b.paint()
}

// HandleKey processes one navigation key. The returned entry is non-zero only
// when Enter commits a selection: either the active candidate, or, with no
// active cursor, an exact resolve of the typed text.
func (b *SearchBox) HandleKey(key search.Key) (domain.SymbolEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	active, committed := b.cursor.Handle(key)
	if committed {
		return b.results[active], true
	}
	if key != search.KeyEnter {
		b.paint()
		return domain.SymbolEntry{}, false
	}
	if b.index != nil {
		entry, ok := b.index.Resolve(b.query)
		return entry, ok
	}
	// No catalog: raw input is taken as a short code so connectivity
	// still works when the catalog endpoint is down.
	if b.query != "" {
		return domain.SymbolEntry{Name: b.query, ShortCode: b.query}, true
	}
	return domain.SymbolEntry{}, false
}

// Results returns the current candidate list.
func (b *SearchBox) Results() []domain.SymbolEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.SymbolEntry, len(b.results))
	copy(out, b.results)
	return out
}

// paint redraws all suggestion rows. Rows beyond the result count clear to
// empty so stale candidates from a longer previous list never linger.
// Callers hold the lock.
func (b *SearchBox) paint() {
	active := b.cursor.Active()
	for i := 0; i < b.limit; i++ {
		id := suggestionID(i)
		if i < len(b.results) {
			b.surface.SetText(id, b.results[i].Name+" ("+b.results[i].ShortCode+")")
		} else {
			b.surface.SetText(id, "")
		}
		if i == active {
			b.surface.AddClass(id, activeSuggestionClass)
		} else {
			b.surface.RemoveClass(id, activeSuggestionClass)
		}
	}
}

func suggestionID(i int) string {
	return "suggestion-" + strconv.Itoa(i)
}
