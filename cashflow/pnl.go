package cashflow

import (
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
)

// Calculator marks curve-valued trades to market.
type Calculator struct {
	pricer Pricer
}

func NewCalculator(p Pricer) *Calculator {
	return &Calculator{pricer: p}
}

// Marked reports whether t's value depends on the forward curve: swaps,
// and outright forwards carrying their own points.
func Marked(t Trade) bool {
	switch t.DealType {
	case FXSwap:
		return true
	case OutrightForward:
		return t.RatePrice != nil
	}
	return false
}

// PnL computes −Amount1 × (curve points − trade points) / divisor in the
// quote currency. When the curve cannot price the maturity date the trade's
// own points are used and P&L is zero. ok is false for trades that are not
// marked against the curve.
func (c *Calculator) PnL(t Trade) (res PnLResult, ok bool, err error) {
	if !Marked(t) {
		return PnLResult{}, false, nil
	}
	if err := checkDates(t); err != nil {
		return PnLResult{}, false, &TradeError{DealID: t.DealID, Op: "pnl", Err: err}
	}

	pts := c.pricer.farPoints(t)
	res = PnLResult{
		DealID:   t.DealID,
		Currency: t.Pair.Quote,
		Amount:   decimal.Zero,
		Source:   pts.source,
		Fallback: pts.err,
	}
	if pts.source == SourceCurve {
		move := pts.value.Sub(t.Points())
		res.Amount = market.PointsToRate(t.Pair, t.Amount1.Neg().Mul(move))
	}
	return res, true, nil
}
