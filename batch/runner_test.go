package batch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTrades() []cashflow.Trade {
	pts := d("-0.5")
	return []cashflow.Trade{
		{
			DealID:    "VAL_IMP:7750129",
			DealType:  cashflow.Spot,
			Pair:      market.Pair{Base: "JPY", Quote: "CNY"},
			Amount1:   d("1200000"),
			Amount2:   d("-53980.8"),
			ValueDate: calendar.Date(2025, 12, 25),
		},
		{
			DealID:       "VAL_IMP:2016522",
			DealType:     cashflow.FXSwap,
			Pair:         market.Pair{Base: "USD", Quote: "CNY"},
			Amount1:      d("-100000000"),
			Amount2:      d("701070000"),
			RatePrice:    &pts,
			ValueDate:    calendar.Date(2025, 12, 29),
			MaturityDate: calendar.Date(2025, 12, 30),
		},
		{
			DealID:    "BAD:1",
			DealType:  "FX Option",
			Pair:      market.Pair{Base: "EUR", Quote: "USD"},
			Amount1:   d("1"),
			Amount2:   d("-1"),
			ValueDate: calendar.Date(2025, 12, 29),
		},
	}
}

func newRunner(workers int) *Runner {
	return New(cashflow.Pricer{AsOf: calendar.Date(2025, 12, 22)}, zerolog.Nop(), workers)
}

func TestRun(t *testing.T) {
	t.Parallel()

	res, err := newRunner(1).Run(context.Background(), sampleTrades())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Trades)
	assert.Len(t, res.Legs, 6)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "BAD:1", res.Failures[0].DealID)
	assert.ErrorIs(t, res.Failures[0], cashflow.ErrUnsupportedDealType)

	want := []struct {
		date   time.Time
		ccy    string
		amount string
	}{
		{calendar.Date(2025, 12, 25), "CNY", "-53980.8"},
		{calendar.Date(2025, 12, 25), "JPY", "1200000"},
		{calendar.Date(2025, 12, 29), "CNY", "701070000"},
		{calendar.Date(2025, 12, 29), "USD", "-100000000"},
		{calendar.Date(2025, 12, 30), "CNY", "-701065000"},
		{calendar.Date(2025, 12, 30), "USD", "100000000"},
	}
	require.Len(t, res.Aggregated, len(want))
	for i, w := range want {
		got := res.Aggregated[i]
		assert.Equal(t, w.date, got.Date, "row %d", i)
		assert.Equal(t, w.ccy, got.Currency, "row %d", i)
		assert.True(t, d(w.amount).Equal(got.Amount), "row %d: want %s, got %s", i, w.amount, got.Amount)
	}

	// No curves loaded: the swap falls back to its own points.
	require.Len(t, res.PnL, 1)
	assert.Equal(t, cashflow.SourceTrade, res.PnL[0].Source)
	assert.True(t, res.PnL[0].Amount.IsZero())
	assert.Equal(t, 1, res.Fallbacks)
	require.Len(t, res.PnLByCurrency, 1)
	assert.Equal(t, "CNY", res.PnLByCurrency[0].Currency)
}

func TestRunWorkersMatchSequential(t *testing.T) {
	t.Parallel()

	var trades []cashflow.Trade
	for i := 0; i < 50; i++ {
		for _, tr := range sampleTrades() {
			tr.DealID = fmt.Sprintf("%s-%d", tr.DealID, i)
			trades = append(trades, tr)
		}
	}

	seq, err := newRunner(1).Run(context.Background(), trades)
	require.NoError(t, err)
	par, err := newRunner(8).Run(context.Background(), trades)
	require.NoError(t, err)

	assert.Equal(t, seq.Legs, par.Legs)
	assert.Equal(t, seq.Aggregated, par.Aggregated)
	assert.Equal(t, seq.PnL, par.PnL)
	assert.Len(t, par.Failures, 50)
	for i := range seq.Failures {
		assert.Equal(t, seq.Failures[i].DealID, par.Failures[i].DealID)
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	res, err := newRunner(4).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Legs)
	assert.Empty(t, res.Aggregated)
	assert.Empty(t, res.Failures)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := newRunner(workers).Run(ctx, sampleTrades())
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}
