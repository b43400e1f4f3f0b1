package domain

// SymbolEntry is one row of the symbol catalog. Immutable after load; the
// short code is the canonical subscription key.
type SymbolEntry struct {
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
}
