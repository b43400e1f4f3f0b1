package render

import (
	"github.com/shopspring/decimal"

	"stockdash/internal/domain"
)

// Color band class names, ordered from strongest gain to strongest loss.
const (
	bandUp4   = "bg-up-4"   // >= 15%
	bandUp3   = "bg-up-3"   // >= 10%
	bandUp2   = "bg-up-2"   // >= 5%
	bandUp1   = "bg-up-1"   // > 0%
	bandDown1 = "bg-down-1" // > -3%
	bandDown2 = "bg-down-2" // <= -3%
)

// Heatmap renders theme-grouped blocks in two mirrored locations: the main
// grid cell and the mini panel entry. Both mirrors are updated together or
// not at all; a partial mirror update is a correctness bug.
type Heatmap struct {
	surface Surface
	blocks  map[string]*domain.ThemeBlock

	// onReload is invoked when theme membership changes structurally.
	// Membership changes are rare, so the view reloads instead of
	// reconciling incrementally.
	onReload func(reason string)
}

// NewHeatmap creates an empty heatmap. onReload may be nil.
func NewHeatmap(surface Surface, onReload func(reason string)) *Heatmap {
	return &Heatmap{
		surface:  surface,
		blocks:   make(map[string]*domain.ThemeBlock),
		onReload: onReload,
	}
}

// Seed installs the tracked blocks and paints both mirrors from the initial
// server-rendered state. Seeding replaces any previous tracking.
func (h *Heatmap) Seed(blocks []domain.ThemeBlock) {
	h.blocks = make(map[string]*domain.ThemeBlock, len(blocks))
	for i := range blocks {
		b := blocks[i]
		h.blocks[b.Code] = &b
		h.surface.SetText(miniNameID(b.Code), b.Name)
		h.paint(&b)
	}
}

// Codes returns the tracked symbol codes.
func (h *Heatmap) Codes() []string {
	codes := make([]string, 0, len(h.blocks))
	for code := range h.blocks {
		codes = append(codes, code)
	}
	return codes
}

// Block returns the tracked block for a code, or nil.
func (h *Heatmap) Block(code string) *domain.ThemeBlock {
	return h.blocks[code]
}

// ApplyUpdate reconciles one symbol's rate and volume into both mirrors.
// Updates for untracked codes are ignored whole, never half-applied.
func (h *Heatmap) ApplyUpdate(code string, rate decimal.Decimal, volume int64) {
	block, ok := h.blocks[code]
	if !ok {
		return
	}
	block.Rate = rate
	block.Volume = volume
	h.paint(block)
}

// HandleThemeChanged requests a full view reload.
func (h *Heatmap) HandleThemeChanged(message string) {
	if h.onReload != nil {
		h.onReload(message)
	}
}

func (h *Heatmap) paint(b *domain.ThemeBlock) {
	label := b.RateLabel()
	band := BandClass(b.Rate)
	weight := BlockWeight(b.Rate)

	h.surface.SetText(mainRateID(b.Code), label)
	h.surface.SetClass(mainBlockID(b.Code), "stock-block "+band)
	h.surface.SetWeight(mainBlockID(b.Code), weight)

	h.surface.SetText(miniRateID(b.Code), label)
	h.surface.SetClass(miniBlockID(b.Code), "mini-block "+band)
	h.surface.SetWeight(miniBlockID(b.Code), weight)
}

// BandClass maps a percent change onto the fixed threshold ladder,
// evaluated top-down, first match wins. Any up-band requires a strictly
// positive rate.
func BandClass(rate decimal.Decimal) string {
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(15)):
		return bandUp4
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return bandUp3
	case rate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return bandUp2
	case rate.GreaterThan(decimal.Zero):
		return bandUp1
	case rate.GreaterThan(decimal.NewFromInt(-3)):
		return bandDown1
	default:
		return bandDown2
	}
}

// BlockWeight is the linear layout weight, capped so one large mover cannot
// dominate the grid: clamp(|rate| * 3, 1, 20).
func BlockWeight(rate decimal.Decimal) float64 {
	w := rate.Abs().InexactFloat64() * 3
	if w < 1 {
		return 1
	}
	if w > 20 {
		return 20
	}
	return w
}

func mainRateID(code string) string  { return "rate-" + code }
func mainBlockID(code string) string { return "block-" + code }
func miniRateID(code string) string  { return "mini-rate-" + code }
func miniBlockID(code string) string { return "mini-block-" + code }
func miniNameID(code string) string  { return "mini-name-" + code }
