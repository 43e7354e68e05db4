package curve

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
)

// Set holds the curves of one run, keyed by currency pair. A nil *Set is
// an empty set.
type Set struct {
	curves map[market.Pair]*Curve
}

func NewSet() *Set {
	return &Set{curves: make(map[market.Pair]*Curve)}
}

// Add registers c. Each pair may only have one curve.
func (s *Set) Add(c *Curve) error {
	if _, ok := s.curves[c.Pair()]; ok {
		return fmt.Errorf("%w: duplicate curve for %s", ErrCurveFormat, c.Pair())
	}
	s.curves[c.Pair()] = c
	return nil
}

func (s *Set) Get(p market.Pair) (*Curve, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s.curves[p]
	return c, ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.curves)
}

// Pairs returns the pairs with a curve, sorted by code.
func (s *Set) Pairs() []market.Pair {
	if s == nil {
		return nil
	}
	out := make([]market.Pair, 0, len(s.curves))
	for p := range s.curves {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// SpotRate is the spot rate query used for currency conversion display.
func (s *Set) SpotRate(p market.Pair) (decimal.Decimal, error) {
	c, ok := s.Get(p)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoCurve, p)
	}
	return c.SpotRate()
}

type SpotQuote struct {
	Pair market.Pair
	Rate decimal.Decimal
}

// SpotRates lists the spot rate of every curve that has one, sorted by pair.
func (s *Set) SpotRates() []SpotQuote {
	var out []SpotQuote
	for _, p := range s.Pairs() {
		rate, err := s.SpotRate(p)
		if err != nil {
			continue
		}
		out = append(out, SpotQuote{Pair: p, Rate: rate})
	}
	return out
}

// Lookup is the outcome of asking the set for points: either Points is
// valid, or Err says why the curve could not price the date.
type Lookup struct {
	Pair   market.Pair
	Target time.Time
	Points decimal.Decimal
	Err    error
}

func (l Lookup) OK() bool {
	return l.Err == nil
}

// Or returns the looked up points, or fallback when the lookup failed.
func (l Lookup) Or(fallback decimal.Decimal) decimal.Decimal {
	if l.OK() {
		return l.Points
	}
	return fallback
}

// Lookup interpolates the curve of p for target, counting from anchor.
func (s *Set) Lookup(p market.Pair, anchor, target time.Time) Lookup {
	l := Lookup{Pair: p, Target: target}
	c, ok := s.Get(p)
	if !ok {
		l.Err = fmt.Errorf("%w: %s", ErrNoCurve, p)
		return l
	}
	l.Points, l.Err = c.Interpolate(anchor, target)
	return l
}
