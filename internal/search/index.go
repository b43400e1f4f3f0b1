package search

import (
	"strings"

	"stockdash/internal/domain"
)

// DefaultQueryLimit caps autocomplete candidate lists.
const DefaultQueryLimit = 10

// Index is the in-memory symbol search over the catalog. Loaded once,
// never mutated after; matching is plain case-insensitive substring
// containment in catalog order, no fuzzy ranking.
type Index struct {
	entries []domain.SymbolEntry
}

// NewIndex builds an index over the catalog entries.
func NewIndex(entries []domain.SymbolEntry) *Index {
	return &Index{entries: entries}
}

// Len returns the catalog size.
func (x *Index) Len() int {
	return len(x.entries)
}

// Query returns up to limit entries whose display name or short code
// contains text, case-insensitively, in catalog order. Empty text matches
// nothing. limit <= 0 falls back to DefaultQueryLimit.
func (x *Index) Query(text string, limit int) []domain.SymbolEntry {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var matched []domain.SymbolEntry
	for _, e := range x.entries {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.ShortCode), q) {
			matched = append(matched, e)
			if len(matched) >= limit {
				break
			}
		}
	}
	return matched
}

// Resolve maps free-text input to a catalog entry by exact name or exact
// short-code equality. Used when the user types instead of picking a
// candidate.
func (x *Index) Resolve(text string) (domain.SymbolEntry, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return domain.SymbolEntry{}, false
	}
	for _, e := range x.entries {
		if e.Name == t || e.ShortCode == t {
			return e, true
		}
	}
	return domain.SymbolEntry{}, false
}
