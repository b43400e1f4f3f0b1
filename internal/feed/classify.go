package feed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stockdash/internal/domain"

	"github.com/shopspring/decimal"
)

// record is one decoded frame. Feed values arrive as strings or bare
// numbers depending on the upstream serializer, so everything goes through
// the tolerant accessors below.
type record map[string]interface{}

// Classify decodes a raw frame and returns every event it matches.
//
// Classification is by field presence, not an explicit tag:
//   - order-book snapshot iff BOTH deepest levels (ASKP10 and BIDP10) are
//     present. Execution records carry best bid/ask as incidental context,
//     so checking level 1 would misclassify every tick.
//   - execution tick iff a traded price and a non-empty trade time are present.
//   - envelope kinds (stock_update / theme_update / subscribed) carry an
//     explicit "type" discriminator on the shared channel.
//
// A frame matching several predicates yields all matching events.
// An empty slice with nil error means the frame was recognized as nothing.
func Classify(payload []byte) ([]Event, error) {
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	var events []Event

	if rec.has(fieldAskPrice+"10") && rec.has(fieldBidPrice+"10") {
		events = append(events, SnapshotEvent{Snapshot: rec.bookSnapshot()})
	}

	if rec.has(fieldTradePrice) && rec.str(fieldTradeTime) != "" {
		events = append(events, TickEvent{Exec: rec.execution()})
	}

	switch rec.str("type") {
	case envelopeStockUpdate:
		if ev, ok := rec.stockUpdate(); ok {
			events = append(events, ev)
		}
	case envelopeThemeUpdate:
		events = append(events, ThemeChangedEvent{Message: rec.str("message")})
	case envelopeSubscribed:
		events = append(events, AckEvent{Code: rec.str("code")})
	}

	return events, nil
}

func (r record) bookSnapshot() domain.BookSnapshot {
	var snap domain.BookSnapshot
	for i := 1; i <= domain.BookDepth; i++ {
		idx := strconv.Itoa(i)
		snap.Asks[i-1] = r.quote(i, domain.Ask, fieldAskPrice+idx, fieldAskVolume+idx)
		snap.Bids[i-1] = r.quote(i, domain.Bid, fieldBidPrice+idx, fieldBidVolume+idx)
	}

	if r.has(fieldProjectedPrice) {
		snap.ProjectedPrice = r.dec(fieldProjectedPrice)
		snap.ProjectedDiff = r.dec(fieldProjectedDiff)
		snap.ProjectedSign = r.str(fieldProjectedSign)
		if snap.ProjectedSign == "" {
			snap.ProjectedSign = "3" // flat
		}
		snap.HasProjected = true
	}
	return snap
}

func (r record) quote(level int, side domain.Side, priceKey, volumeKey string) domain.Quote {
	q := domain.Quote{Level: level, Side: side}
	if s := strings.TrimSpace(r.str(priceKey)); !r.has(priceKey) || s == "" || s == "-" {
		q.Empty = true
		return q
	}
	q.Price = r.dec(priceKey)
	q.Volume = r.int64(volumeKey)
	return q
}

func (r record) execution() domain.Execution {
	return domain.Execution{
		Price:  r.dec(fieldTradePrice),
		Diff:   r.dec(fieldTradeDiff),
		Rate:   r.dec(fieldTradeRate),
		Volume: r.int64(fieldTradeVolume),
		Time:   r.str(fieldTradeTime),
	}
}

func (r record) stockUpdate() (StockUpdateEvent, bool) {
	data, ok := r["data"].(map[string]interface{})
	if !ok {
		return StockUpdateEvent{}, false
	}
	inner := record(data)
	code := inner.str("stock_code")
	output, ok := data["output"].(map[string]interface{})
	if !ok || code == "" {
		return StockUpdateEvent{}, false
	}
	out := record(output)
	return StockUpdateEvent{Block: domain.ThemeBlock{
		Code:   code,
		Rate:   out.dec("prdy_ctrt"),
		Volume: out.int64("acml_vol"),
	}}, true
}

func (r record) has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r record) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// dec parses a field as a decimal. Unparseable or absent values come back as
// zero; the feed uses "-" and "" for blanks.
func (r record) dec(key string) decimal.Decimal {
	s := strings.TrimSpace(r.str(key))
	if s == "" || s == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (r record) int64(key string) int64 {
	return r.dec(key).IntPart()
}
