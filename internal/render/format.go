package render

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered for never-initialized or missing values.
const Placeholder = "-"

// FormatDecimal renders a value with thousands separators. Fractional
// values keep two digits; whole values render as grouped integers.
func FormatDecimal(d decimal.Decimal) string {
	if d.IsInteger() {
		return humanize.Comma(d.IntPart())
	}
	// Round before splitting so a carry out of the fraction (0.995 -> 1.00)
	// lands in the integer part instead of being glued on as an extra digit.
	r := d.Round(2)
	neg := r.IsNegative()
	abs := r.Abs()
	whole := humanize.Comma(abs.IntPart())
	frac := abs.Sub(abs.Floor()).StringFixed(2)
	out := whole + strings.TrimPrefix(frac, "0")
	if neg {
		return "-" + out
	}
	return out
}

// FormatInt renders an integer with thousands separators.
func FormatInt(n int64) string {
	return humanize.Comma(n)
}

// ParseRendered parses a number back out of previously rendered text,
// stripping thousands separators. Placeholder or unparseable text yields
// zero, matching the never-initialized state.
func ParseRendered(text string) decimal.Decimal {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if s == "" || s == Placeholder {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
