package render

import (
	"github.com/shopspring/decimal"
)

// Element ids and base classes of the current-price indicator.
const (
	priceElementID = "current-price"
	diffElementID  = "current-price-diff"

	priceBaseClass = "current-price-value"
	diffBaseClass  = "diff"
)

// Coded change-direction glyphs. The order-book feed supplies only a coded
// sign (1/2 up, 4/5 down); the execution feed supplies only a signed diff.
// Both paths converge here.
const (
	glyphUp   = "▲"
	glyphDown = "▼"
)

// PriceIndicator renders the current price with signed change and percent.
// It memoizes the last rendered strings so repeated identical prices are a
// no-op: no DOM write, no animation.
type PriceIndicator struct {
	surface Surface
	flasher *Flasher

	lastPriceText string
	lastDiffText  string
}

// NewPriceIndicator creates the indicator and paints placeholders.
func NewPriceIndicator(surface Surface, flasher *Flasher) *PriceIndicator {
	p := &PriceIndicator{surface: surface, flasher: flasher}
	p.Reset()
	return p
}

// Reset returns the indicator to the never-initialized state.
func (p *PriceIndicator) Reset() {
	p.lastPriceText = ""
	p.lastDiffText = ""
	p.surface.SetText(priceElementID, Placeholder)
	p.surface.SetText(diffElementID, Placeholder)
	p.surface.SetClass(priceElementID, priceBaseClass)
	p.surface.SetClass(diffElementID, diffBaseClass)
}

// Update renders price, diff and rate. sign is the coded market direction
// ("1"/"2" up, "4"/"5" down) and overrides the arithmetic sign of diff when
// supplied; pass "" when the feed carries no code.
func (p *PriceIndicator) Update(price, diff, rate decimal.Decimal, sign string) {
	formatted := FormatDecimal(price)
	if formatted != p.lastPriceText {
		prev := ParseRendered(p.surface.Text(priceElementID))
		firstPaint := p.lastPriceText == "" || p.lastPriceText == Placeholder

		p.surface.SetText(priceElementID, formatted)
		p.lastPriceText = formatted

		if !firstPaint {
			if price.GreaterThan(prev) {
				p.flasher.Pulse(priceElementID, Up)
			} else if price.LessThan(prev) {
				p.flasher.Pulse(priceElementID, Down)
			}
		}
	}

	glyph, colorClass := directionOf(diff, sign)
	diffText := glyph + FormatDecimal(diff.Abs()) + " (" + rate.StringFixed(2) + "%)"
	if diffText != p.lastDiffText {
		p.surface.SetText(diffElementID, diffText)
		p.lastDiffText = diffText
	}

	p.surface.SetClass(priceElementID, joinClass(priceBaseClass, colorClass))
	p.surface.SetClass(diffElementID, joinClass(diffBaseClass, colorClass))
}

// directionOf resolves the dual-mode sign handling: a coded sign wins over
// the arithmetic sign of the diff; without a code the diff decides both the
// leading glyph and the color class.
func directionOf(diff decimal.Decimal, sign string) (glyph, colorClass string) {
	if sign != "" {
		switch sign {
		case "1", "2":
			return glyphUp, "up"
		case "4", "5":
			return glyphDown, "down"
		default:
			return "", "" // flat code
		}
	}
	if diff.IsPositive() {
		return "+", "up"
	}
	if diff.IsNegative() {
		return "", "down"
	}
	return "", ""
}

func joinClass(base, extra string) string {
	if extra == "" {
		return base
	}
	return base + " " + extra
}
