package feed

import (
	"strings"
	"testing"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointsReport = `# forward points report
USD/CNY Forward Points
Tenor,Settlement Date,Bid Points,Ask Points,Bid Outright,Ask Outright
ON,2025/12/30,-0.7,-0.5,7.0099,7.0101
SP,2025/12/31,0,0,7.0100,7.0110
1W,2026/01/07,-4,-3,7.0096,7.0107
1M,2026/02/02,-22,-21,7.0078,7.0089

JPYCNY
Tenor,Settlement Date,Bid Points,Ask Points
SP,31/12/2025,0,0
1M,02/02/2026,14,16
10Y,02/02/2036,1,2

EURUSD
SP,2025/12/31,0,0,1.1700,1.1702
1W,2025/12/30,1,2,1.1701,1.1703

XYZ
SP,2025/12/31,0,0
`

func TestReadCurves(t *testing.T) {
	t.Parallel()

	load, err := ReadCurves(strings.NewReader(pointsReport))
	require.NoError(t, err)

	usdcny := market.Pair{Base: "USD", Quote: "CNY"}
	jpycny := market.Pair{Base: "JPY", Quote: "CNY"}
	assert.Equal(t, []market.Pair{jpycny, usdcny}, load.Curves.Pairs())

	c, ok := load.Curves.Get(usdcny)
	require.True(t, ok)
	quotes := c.Quotes()
	require.Len(t, quotes, 4)
	assert.Equal(t, curve.ON, quotes[0].Tenor)
	assert.Equal(t, calendar.Date(2026, 2, 2), quotes[3].Settlement)
	assert.Equal(t, "-21.5", quotes[3].MidPoints().String())

	spot, err := load.Curves.SpotRate(usdcny)
	require.NoError(t, err)
	assert.Equal(t, "7.0105", spot.String())

	j, ok := load.Curves.Get(jpycny)
	require.True(t, ok)
	assert.Len(t, j.Quotes(), 2)
	_, err = j.SpotRate()
	assert.ErrorIs(t, err, curve.ErrNoSpotQuote)

	// 10Y tenor, the unordered EURUSD curve, the bad XYZ header and the
	// row that follows it
	require.Len(t, load.Rejected, 4)
	assert.ErrorIs(t, load.Rejected[0], curve.ErrCurveFormat)
	assert.Equal(t, "JPY/CNY", load.Rejected[0].Key)
	assert.ErrorIs(t, load.Rejected[1], market.ErrFormat)
	assert.Contains(t, load.Rejected[2].Error(), "before any currency pair header")
	assert.ErrorIs(t, load.Rejected[3], curve.ErrCurveFormat)
	assert.Equal(t, "EUR/USD", load.Rejected[3].Key)
}

func TestReadCurvesInterpolates(t *testing.T) {
	t.Parallel()

	load, err := ReadCurves(strings.NewReader(pointsReport))
	require.NoError(t, err)

	l := load.Curves.Lookup(market.Pair{Base: "USD", Quote: "CNY"},
		calendar.Date(2025, 12, 29), calendar.Date(2026, 1, 14))
	require.NoError(t, l.Err)
	assert.Equal(t, "-8.5", l.Points.String())
}

func TestReadCurvesBadQuoteRow(t *testing.T) {
	t.Parallel()

	in := "USD/CNY\nSP,2025/12/31,x,0\n1W,,1,2\n1M,2026/02/02,1\n"
	load, err := ReadCurves(strings.NewReader(in))
	require.NoError(t, err)

	// all three rows rejected, then the empty curve itself
	require.Len(t, load.Rejected, 4)
	assert.Contains(t, load.Rejected[0].Error(), "bid points")
	assert.Contains(t, load.Rejected[1].Error(), "settlement date missing")
	assert.Contains(t, load.Rejected[2].Error(), "at least 4 columns")
	assert.ErrorIs(t, load.Rejected[3], curve.ErrCurveFormat)
	assert.Equal(t, 0, load.Curves.Len())
}

func TestReadCurvesPaddedHeader(t *testing.T) {
	t.Parallel()

	in := "USDCNY,,,,,\nTenor,Settlement Date,Bid Points,Ask Points,,\nSP,2025/12/31,0,0,7.0100,7.0110\n1W,2026/01/07,-4,-3,,\n"
	load, err := ReadCurves(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, load.Rejected)

	c, ok := load.Curves.Get(market.Pair{Base: "USD", Quote: "CNY"})
	require.True(t, ok)
	assert.Len(t, c.Quotes(), 2)
}
