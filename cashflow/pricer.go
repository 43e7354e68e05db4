package cashflow

import (
	"time"

	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/shopspring/decimal"
)

// Pricer resolves the forward points of a trade's far date. Curves may be
// nil, in which case every trade prices off its own Rate/Price.
type Pricer struct {
	Curves *curve.Set
	AsOf   time.Time
}

type farPoints struct {
	value  decimal.Decimal
	source Source
	err    error // lookup failure when source is trade
}

// farPoints tries the curve first and falls back to the trade's points.
func (p Pricer) farPoints(t Trade) farPoints {
	l := p.Curves.Lookup(t.Pair, curve.Anchor(p.AsOf, t.ValueDate), t.MaturityDate)
	if l.OK() {
		return farPoints{value: l.Points, source: SourceCurve}
	}
	return farPoints{value: t.Points(), source: SourceTrade, err: l.Err}
}

// checkDates validates the dates every curve-valued deal needs.
func checkDates(t Trade) error {
	if t.ValueDate.IsZero() {
		return ErrMissingValueDate
	}
	if t.MaturityDate.IsZero() {
		return ErrMissingMaturityDate
	}
	if !t.MaturityDate.After(t.ValueDate) {
		return ErrInvalidMaturityDate
	}
	return nil
}
