package cashflow

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/shopspring/decimal"
)

type aggKey struct {
	date     time.Time
	currency string
}

// Aggregate sums legs by (date, currency). Rows come out ordered by date,
// then currency code. No rounding is applied.
func Aggregate(legs []Leg) []Aggregated {
	sums := make(map[aggKey]decimal.Decimal, len(legs))
	for _, l := range legs {
		k := aggKey{date: calendar.Day(l.Date), currency: l.Currency}
		sums[k] = sums[k].Add(l.Amount)
	}

	out := make([]Aggregated, 0, len(sums))
	for k, amt := range sums {
		out = append(out, Aggregated{Date: k.date, Currency: k.currency, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

// SumPnLByCurrency totals P&L per attributed currency, sorted by code.
func SumPnLByCurrency(results []PnLResult) []CurrencyAmount {
	sums := make(map[string]decimal.Decimal)
	for _, r := range results {
		sums[r.Currency] = sums[r.Currency].Add(r.Amount)
	}
	out := make([]CurrencyAmount, 0, len(sums))
	for ccy, amt := range sums {
		out = append(out, CurrencyAmount{Currency: ccy, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
