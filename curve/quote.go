package curve

import (
	"time"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Quote is one tenor row of a forward points curve.
type Quote struct {
	Tenor       Tenor
	Settlement  time.Time
	BidPoints   decimal.Decimal
	AskPoints   decimal.Decimal
	BidOutright decimal.Decimal
	AskOutright decimal.Decimal
}

func (q Quote) MidPoints() decimal.Decimal {
	return q.BidPoints.Add(q.AskPoints).Div(two)
}

// HasOutright reports whether either outright side was quoted.
func (q Quote) HasOutright() bool {
	return !q.BidOutright.IsZero() || !q.AskOutright.IsZero()
}

// MidOutright averages the outright sides. A one-sided quote returns the
// side that is present.
func (q Quote) MidOutright() decimal.Decimal {
	switch {
	case q.BidOutright.IsZero():
		return q.AskOutright
	case q.AskOutright.IsZero():
		return q.BidOutright
	}
	return q.BidOutright.Add(q.AskOutright).Div(two)
}
