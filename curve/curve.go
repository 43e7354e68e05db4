// Package curve holds per-pair forward points curves and interpolates
// points for arbitrary settlement dates.
package curve

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
)

// interpPrecision is the number of decimal places kept by the single
// division done while interpolating.
const interpPrecision = 16

// Curve is an immutable forward points curve for one currency pair, ordered
// by settlement date.
type Curve struct {
	pair   market.Pair
	quotes []Quote
	cal    calendar.Calendar
}

type Option func(*Curve)

// WithCalendar replaces the weekday-only business day calendar used to
// count tenor lengths.
func WithCalendar(cal calendar.Calendar) Option {
	return func(c *Curve) {
		if cal != nil {
			c.cal = cal
		}
	}
}

// Load builds a curve. Settlement dates must be strictly increasing.
func Load(pair market.Pair, quotes []Quote, opts ...Option) (*Curve, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s has no quotes", ErrCurveFormat, pair)
	}

	c := &Curve{
		pair:   pair,
		quotes: make([]Quote, len(quotes)),
		cal:    calendar.Weekdays{},
	}
	for i, q := range quotes {
		q.Settlement = calendar.Day(q.Settlement)
		if q.Settlement.IsZero() {
			return nil, fmt.Errorf("%w: %s %s has no settlement date", ErrCurveFormat, pair, q.Tenor)
		}
		if i > 0 && !q.Settlement.After(c.quotes[i-1].Settlement) {
			prev := c.quotes[i-1]
			return nil, fmt.Errorf("%w: %s %s settles %s, not after %s %s",
				ErrCurveFormat, pair, q.Tenor, q.Settlement.Format(time.DateOnly),
				prev.Tenor, prev.Settlement.Format(time.DateOnly))
		}
		c.quotes[i] = q
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Curve) Pair() market.Pair {
	return c.pair
}

// Quotes returns a copy of the curve's rows.
func (c *Curve) Quotes() []Quote {
	return append([]Quote(nil), c.quotes...)
}

func (c *Curve) Quote(t Tenor) (Quote, bool) {
	for _, q := range c.quotes {
		if q.Tenor == t {
			return q, true
		}
	}
	return Quote{}, false
}

// SpotRate returns the mid outright rate of the SP row.
func (c *Curve) SpotRate() (decimal.Decimal, error) {
	q, ok := c.Quote(SP)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoSpotQuote, c.pair)
	}
	if !q.HasOutright() {
		return decimal.Zero, fmt.Errorf("%w: %s SP row has no outright rate", ErrNoSpotQuote, c.pair)
	}
	return q.MidOutright(), nil
}

// Anchor is the date tenor lengths are counted from: the later of the
// as-of date and the trade's value date.
func Anchor(asOf, valueDate time.Time) time.Time {
	if asOf.After(valueDate) {
		return calendar.Day(asOf)
	}
	return calendar.Day(valueDate)
}

type pillar struct {
	tenor  Tenor
	days   int
	points decimal.Decimal
}

// pillars measures every quote settling after anchor in business days.
func (c *Curve) pillars(anchor time.Time) []pillar {
	out := make([]pillar, 0, len(c.quotes))
	for _, q := range c.quotes {
		if !q.Settlement.After(anchor) {
			continue
		}
		out = append(out, pillar{
			tenor:  q.Tenor,
			days:   calendar.BusinessDays(c.cal, anchor, q.Settlement),
			points: q.MidPoints(),
		})
	}
	return out
}

// Interpolate returns the mid points for settlement on target, measured in
// business days from anchor. A tenor with the same day count is returned
// as is; otherwise points are linearly interpolated between the
// bracketing tenors. Targets outside the quoted tenors fail with
// ErrOutOfRange; the curve never extrapolates.
func (c *Curve) Interpolate(anchor, target time.Time) (decimal.Decimal, error) {
	anchor, target = calendar.Day(anchor), calendar.Day(target)
	if !target.After(anchor) {
		return decimal.Zero, fmt.Errorf("%w: %s target %s is not after %s",
			ErrOutOfRange, c.pair, target.Format(time.DateOnly), anchor.Format(time.DateOnly))
	}

	series := c.pillars(anchor)
	if len(series) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s has no quotes settling after %s",
			ErrOutOfRange, c.pair, anchor.Format(time.DateOnly))
	}

	days := calendar.BusinessDays(c.cal, anchor, target)
	first, last := series[0], series[len(series)-1]
	if days < first.days || days > last.days {
		return decimal.Zero, fmt.Errorf("%w: %s %s is %d business days out, curve covers %d (%s) to %d (%s)",
			ErrOutOfRange, c.pair, target.Format(time.DateOnly), days, first.days, first.tenor, last.days, last.tenor)
	}

	for _, p := range series {
		if p.days == days {
			return p.points, nil
		}
	}

	for i := 1; i < len(series); i++ {
		lo, hi := series[i-1], series[i]
		if days < lo.days || days > hi.days {
			continue
		}
		span := decimal.NewFromInt(int64(hi.days - lo.days))
		offset := decimal.NewFromInt(int64(days - lo.days))
		step := hi.points.Sub(lo.points).Mul(offset).DivRound(span, interpPrecision)
		return lo.points.Add(step), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s %s not bracketed", ErrOutOfRange, c.pair, target.Format(time.DateOnly))
}
