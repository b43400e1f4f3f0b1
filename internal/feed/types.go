package feed

import (
	"stockdash/internal/domain"
)

// Raw feed field names (KIS wire format). Order-book and execution records
// are flat objects multiplexed on the per-symbol channel with no type tag;
// theme fan-out arrives as a typed envelope on the shared channel.
const (
	fieldAskPrice  = "ASKP"       // ASKP1..ASKP10
	fieldAskVolume = "ASKP_RSQN"  // ASKP_RSQN1..10
	fieldBidPrice  = "BIDP"       // BIDP1..BIDP10
	fieldBidVolume = "BIDP_RSQN"  // BIDP_RSQN1..10

	fieldProjectedPrice = "ANTC_CNPR"
	fieldProjectedDiff  = "ANTC_CNTG_VRSS"
	fieldProjectedSign  = "ANTC_CNTG_VRSS_SIGN"

	fieldTradePrice  = "STCK_PRPR"
	fieldTradeTime   = "STCK_CNTG_HOUR"
	fieldTradeDiff   = "PRDY_VRSS"
	fieldTradeRate   = "PRDY_CTRT"
	fieldTradeVolume = "CNTG_VOL"

	envelopeStockUpdate = "stock_update"
	envelopeThemeUpdate = "theme_update"
	envelopeSubscribed  = "subscribed"
)

// Event is one classified feed event. A single frame may decode into several
// events (an order-book record can carry execution fields too), so the
// classifier returns a slice and callers dispatch each variant.
type Event interface {
	feedEvent()
}

// SnapshotEvent is a complete order-book replace.
type SnapshotEvent struct {
	Snapshot domain.BookSnapshot
}

// TickEvent is one trade execution.
type TickEvent struct {
	Exec domain.Execution
}

// StockUpdateEvent is a heatmap per-symbol rate/volume update.
type StockUpdateEvent struct {
	Block domain.ThemeBlock
}

// ThemeChangedEvent signals that theme membership changed structurally.
// Handled by a full view reload, not incremental reconciliation.
type ThemeChangedEvent struct {
	Message string
}

// AckEvent confirms a subscribe request on the shared channel.
type AckEvent struct {
	Code string
}

func (SnapshotEvent) feedEvent()     {}
func (TickEvent) feedEvent()         {}
func (StockUpdateEvent) feedEvent()  {}
func (ThemeChangedEvent) feedEvent() {}
func (AckEvent) feedEvent()          {}
