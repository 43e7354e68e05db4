package cashflow

import (
	"testing"
	"time"

	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPnLAgainstCurve(t *testing.T) {
	t.Parallel()

	c := NewCalculator(Pricer{Curves: usdcnyCurves(t), AsOf: asOf})
	res, ok, err := c.PnL(swapTrade())
	require.NoError(t, err)
	require.True(t, ok)

	// −(−100,000,000) × (−0.6 − (−0.5)) / 10,000
	assertDecimal(t, "-1000", res.Amount)
	assert.Equal(t, "CNY", res.Currency)
	assert.Equal(t, "VAL_IMP:2016522", res.DealID)
	assert.Equal(t, SourceCurve, res.Source)
	assert.NoError(t, res.Fallback)
}

func TestPnLSign(t *testing.T) {
	t.Parallel()

	c := NewCalculator(Pricer{Curves: usdcnyCurves(t), AsOf: asOf})

	tr := swapTrade()
	tr.Amount1 = d("100000000")
	tr.Amount2 = d("-701070000")
	res, _, err := c.PnL(tr)
	require.NoError(t, err)
	assertDecimal(t, "1000", res.Amount)

	tr.RatePrice = dp("-0.6")
	res, _, err = c.PnL(tr)
	require.NoError(t, err)
	assertDecimal(t, "0", res.Amount)
}

func TestPnLFallsBackToZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		curves *curve.Set
		mat    time.Time
		want   error
	}{
		{"no curves", nil, day(2025, 12, 30), curve.ErrNoCurve},
		{"out of range", usdcnyCurves(t), day(2026, 6, 30), curve.ErrOutOfRange},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := swapTrade()
			tr.MaturityDate = tt.mat

			res, ok, err := NewCalculator(Pricer{Curves: tt.curves, AsOf: asOf}).PnL(tr)
			require.NoError(t, err)
			require.True(t, ok)
			assertDecimal(t, "0", res.Amount)
			assert.Equal(t, SourceTrade, res.Source)
			assert.ErrorIs(t, res.Fallback, tt.want)
			assert.Equal(t, "CNY", res.Currency)
		})
	}
}

func TestPnLPointsBaseDivisor(t *testing.T) {
	t.Parallel()

	c, err := curve.Load(jpycny, []curve.Quote{
		{Tenor: curve.SP, Settlement: day(2025, 12, 31), BidPoints: d("0"), AskPoints: d("0")},
		{Tenor: curve.M1, Settlement: day(2026, 2, 2), BidPoints: d("14"), AskPoints: d("16")},
	})
	require.NoError(t, err)
	set := curve.NewSet()
	require.NoError(t, set.Add(c))

	res, ok, err := NewCalculator(Pricer{Curves: set, AsOf: asOf}).PnL(Trade{
		DealID:       "J1",
		DealType:     FXSwap,
		Pair:         jpycny,
		Amount1:      d("-10000000"),
		Amount2:      d("450123.45"),
		RatePrice:    dp("12.3"),
		ValueDate:    day(2025, 12, 29),
		MaturityDate: day(2026, 2, 2),
	})
	require.NoError(t, err)
	require.True(t, ok)
	// 10,000,000 × (15 − 12.3) / 1,000,000
	assertDecimal(t, "27", res.Amount)
}

func TestPnLApplicability(t *testing.T) {
	t.Parallel()

	c := NewCalculator(Pricer{Curves: usdcnyCurves(t), AsOf: asOf})

	spot := swapTrade()
	spot.DealType = Spot
	_, ok, err := c.PnL(spot)
	assert.NoError(t, err)
	assert.False(t, ok)

	fwd := swapTrade()
	fwd.DealType = OutrightForward
	fwd.RatePrice = nil
	_, ok, err = c.PnL(fwd)
	assert.NoError(t, err)
	assert.False(t, ok)

	fwd.RatePrice = dp("-0.5")
	res, ok, err := c.PnL(fwd)
	require.NoError(t, err)
	assert.True(t, ok)
	assertDecimal(t, "-1000", res.Amount)
}

func TestPnLMissingMaturity(t *testing.T) {
	t.Parallel()

	tr := swapTrade()
	tr.MaturityDate = time.Time{}
	_, ok, err := NewCalculator(Pricer{AsOf: asOf}).PnL(tr)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMissingMaturityDate)

	var te *TradeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "pnl", te.Op)
}
