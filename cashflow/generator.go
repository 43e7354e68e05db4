package cashflow

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
)

// ratePrecision bounds the decimal places of a near rate |Amount2/Amount1|.
const ratePrecision = 16

// Generator emits the cashflow legs of a trade.
type Generator struct {
	pricer Pricer
}

func NewGenerator(p Pricer) *Generator {
	return &Generator{pricer: p}
}

// Generate returns the legs of t in emission order. Failures are
// *TradeError values wrapping one of the package's sentinel errors.
func (g *Generator) Generate(t Trade) ([]Leg, error) {
	var (
		legs []Leg
		err  error
	)
	switch t.DealType {
	case Spot:
		legs, err = g.spot(t)
	case OutrightForward:
		legs, err = g.forward(t)
	case FXSwap:
		legs, err = g.swap(t)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedDealType, t.DealType)
	}
	if err != nil {
		return nil, &TradeError{DealID: t.DealID, Op: "cashflow", Err: err}
	}
	return legs, nil
}

func (g *Generator) spot(t Trade) ([]Leg, error) {
	if t.ValueDate.IsZero() {
		return nil, ErrMissingValueDate
	}
	return []Leg{
		newLeg(t, t.ValueDate, t.Pair.Base, t.Amount1, KindSpot),
		newLeg(t, t.ValueDate, t.Pair.Quote, t.Amount2, KindSpot),
	}, nil
}

func (g *Generator) forward(t Trade) ([]Leg, error) {
	if err := checkDates(t); err != nil {
		return nil, err
	}
	return []Leg{
		newLeg(t, t.MaturityDate, t.Pair.Base, t.Amount1, KindForward),
		newLeg(t, t.MaturityDate, t.Pair.Quote, t.Amount2, KindForward),
	}, nil
}

func (g *Generator) swap(t Trade) ([]Leg, error) {
	if err := checkDates(t); err != nil {
		return nil, err
	}
	if t.Amount1.IsZero() {
		return nil, ErrZeroAmount
	}

	pts := g.pricer.farPoints(t)
	return []Leg{
		newLeg(t, t.ValueDate, t.Pair.Base, t.Amount1, KindNear),
		newLeg(t, t.ValueDate, t.Pair.Quote, t.Amount2, KindNear),
		newLeg(t, t.MaturityDate, t.Pair.Base, t.Amount1.Neg(), KindFar),
		newLeg(t, t.MaturityDate, t.Pair.Quote, farQuoteAmount(t, pts.value), KindFar),
	}, nil
}

// farQuoteAmount is Amount1 × far rate, where far rate is
// |Amount2/Amount1| + points/divisor. Amount1 × |Amount2/Amount1| is
// sign(Amount1)·|Amount2|, which keeps the product exact.
func farQuoteAmount(t Trade, points decimal.Decimal) decimal.Decimal {
	near := decimal.NewFromInt(int64(t.Amount1.Sign())).Mul(t.Amount2.Abs())
	return near.Add(market.PointsToRate(t.Pair, t.Amount1.Mul(points)))
}

// FarRate returns the far rate a swap's far quote leg is settled at, and
// where its points came from.
func (g *Generator) FarRate(t Trade) (decimal.Decimal, Source, error) {
	if t.Amount1.IsZero() {
		return decimal.Zero, "", &TradeError{DealID: t.DealID, Op: "far rate", Err: ErrZeroAmount}
	}
	pts := g.pricer.farPoints(t)
	near := t.Amount2.Abs().DivRound(t.Amount1.Abs(), ratePrecision)
	return near.Add(market.PointsToRate(t.Pair, pts.value)), pts.source, nil
}

func newLeg(t Trade, date time.Time, ccy string, amt decimal.Decimal, kind LegKind) Leg {
	return Leg{
		Date:     date,
		Currency: ccy,
		Amount:   market.Normalize(ccy, amt),
		DealID:   t.DealID,
		Kind:     kind,
	}
}
