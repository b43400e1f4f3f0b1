package domain

import "github.com/shopspring/decimal"

// BookDepth is the number of price levels tracked per side.
const BookDepth = 10

// Side identifies which half of the order book a quote belongs to.
type Side int

const (
	Ask Side = iota
	Bid
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Quote is one rung of the order-book ladder. The (Level, Side) pair is the
// sole identity; a snapshot overwrites all twenty rungs wholesale.
type Quote struct {
	Level  int             `json:"level"` // 1 = best, BookDepth = deepest
	Side   Side            `json:"side"`
	Price  decimal.Decimal `json:"price"`
	Volume int64           `json:"volume"`
	Empty  bool            `json:"empty"` // level missing from the feed
}

// BookSnapshot is a complete replace-all update of the ladder plus the
// optional projected-price fields some feeds attach to it.
type BookSnapshot struct {
	Asks [BookDepth]Quote `json:"asks"`
	Bids [BookDepth]Quote `json:"bids"`

	// Projected execution price context (may be absent).
	ProjectedPrice decimal.Decimal `json:"projected_price"`
	ProjectedDiff  decimal.Decimal `json:"projected_diff"`
	ProjectedSign  string          `json:"projected_sign"` // coded: 1/2 up, 3 flat, 4/5 down
	HasProjected   bool            `json:"has_projected"`
}

// CurrentPrice picks the indicator price for a snapshot: projected price when
// present, otherwise best bid, otherwise best ask.
func (s *BookSnapshot) CurrentPrice() (decimal.Decimal, bool) {
	if s.HasProjected && !s.ProjectedPrice.IsZero() {
		return s.ProjectedPrice, true
	}
	if !s.Bids[0].Empty && !s.Bids[0].Price.IsZero() {
		return s.Bids[0].Price, true
	}
	if !s.Asks[0].Empty && !s.Asks[0].Price.IsZero() {
		return s.Asks[0].Price, true
	}
	return decimal.Zero, false
}

// ProjectedRate derives the percent change implied by the projected diff
// against the previous close (price - diff). Returns "0.00" when the close
// is not positive.
func (s *BookSnapshot) ProjectedRate() string {
	price, ok := s.CurrentPrice()
	if !ok {
		return "0.00"
	}
	prevClose := price.Sub(s.ProjectedDiff)
	if !prevClose.IsPositive() {
		return "0.00"
	}
	return s.ProjectedDiff.Div(prevClose).Mul(decimal.NewFromInt(100)).StringFixed(2)
}
