package domain

import "github.com/shopspring/decimal"

// ThemeBlock is the per-symbol cell of the theme heatmap. One instance per
// tracked symbol, rendered in two places (main grid, mini panel) that must
// stay mutually consistent.
type ThemeBlock struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"` // percent change vs previous close
	Volume int64           `json:"volume"`
}

// RateLabel renders the rate the way the heatmap shows it: positive rates
// carry an explicit plus sign.
func (b *ThemeBlock) RateLabel() string {
	s := b.Rate.StringFixed(2)
	if b.Rate.IsPositive() {
		return "+" + s + "%"
	}
	return s + "%"
}
