package domain

import "github.com/shopspring/decimal"

// Execution is one trade-execution event. Immutable once created; held only
// in the bounded tape.
type Execution struct {
	Price  decimal.Decimal `json:"price"`
	Diff   decimal.Decimal `json:"diff"` // change vs previous close
	Rate   decimal.Decimal `json:"rate"` // percent change vs previous close
	Volume int64           `json:"volume"`
	Time   string          `json:"time"` // raw feed time, normally 6 digits HHMMSS
}

// FormatTime renders the six-digit trade time as HH:MM:SS. Shorter or
// malformed input is passed through untouched.
func (e *Execution) FormatTime() string {
	t := e.Time
	if len(t) < 6 {
		return t
	}
	return t[0:2] + ":" + t[2:4] + ":" + t[4:6]
}

// DiffDirection returns "up", "down" or "" from the sign of the diff.
// Tape rows are colored by this, not by comparison to the prior row.
func (e *Execution) DiffDirection() string {
	if e.Diff.IsPositive() {
		return "up"
	}
	if e.Diff.IsNegative() {
		return "down"
	}
	return ""
}
