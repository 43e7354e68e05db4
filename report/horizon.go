package report

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/shopspring/decimal"
)

type Bucket string

const (
	Today        Bucket = "Today"
	ThisWeek     Bucket = "This Week"
	ThisMonth    Bucket = "This Month"
	NextQuarter  Bucket = "Next 3 Months"
	BeyondBucket Bucket = "Beyond"
)

var Buckets = []Bucket{Today, ThisWeek, ThisMonth, NextQuarter, BeyondBucket}

// Classify places date in the first bucket whose upper bound it falls
// under. Past dates count as Today.
func Classify(asOf, date time.Time) Bucket {
	asOf = calendar.Day(asOf)
	date = calendar.Day(date)

	weekday := (int(asOf.Weekday()) + 6) % 7 // Monday = 0
	weekEnd := asOf.AddDate(0, 0, 7-weekday)
	monthEnd := time.Date(asOf.Year(), asOf.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	quarterEnd := asOf.AddDate(0, 0, 90)

	switch {
	case !date.After(asOf):
		return Today
	case date.Before(weekEnd):
		return ThisWeek
	case date.Before(monthEnd):
		return ThisMonth
	case date.Before(quarterEnd):
		return NextQuarter
	}
	return BeyondBucket
}

// Summary is everything the horizon report and the Org summary show for
// one run.
type Summary struct {
	RunID     string
	AsOf      time.Time
	Generated time.Time
	Trades    int
	Failures  int
	Fallbacks int
	Legs      []cashflow.Leg
	PnL       []cashflow.CurrencyAmount
	Spot      []curve.SpotQuote
}

type BucketTotals struct {
	Bucket Bucket
	Totals []cashflow.CurrencyAmount
}

// Horizon totals s.Legs per bucket and currency. Every bucket is present,
// in order, even when empty.
func (s Summary) Horizon() []BucketTotals {
	sums := make(map[Bucket]map[string]decimal.Decimal, len(Buckets))
	for _, l := range s.Legs {
		b := Classify(s.AsOf, l.Date)
		if sums[b] == nil {
			sums[b] = make(map[string]decimal.Decimal)
		}
		sums[b][l.Currency] = sums[b][l.Currency].Add(l.Amount)
	}

	out := make([]BucketTotals, 0, len(Buckets))
	for _, b := range Buckets {
		bt := BucketTotals{Bucket: b}
		for ccy, amt := range sums[b] {
			bt.Totals = append(bt.Totals, cashflow.CurrencyAmount{Currency: ccy, Amount: amt})
		}
		sort.Slice(bt.Totals, func(i, j int) bool { return bt.Totals[i].Currency < bt.Totals[j].Currency })
		out = append(out, bt)
	}
	return out
}
