package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blotter = "\ufeff" + `Deal Id,Type of Deal,Security,Amount1,Amount2,Value Date,Mat. Date,Rate/Price,Folder
VAL_IMP:7750129,Spot,JPY/CNY,1200000,-53980.8,25/12/2025,,,TRADER
VAL_IMP:2016522,FX Swap,USD/CNY,-100000000,701070000,29/12/2025,30/12/2025,-0.5,JSH_SWAP
VAL_IMP:2016523,FX Swap,USD/CNY,"-1,000,000","7,010,700",29/12/2025,29/01/2026,-12.25,JSH_SWPPOS
VAL_IMP:2016524,Outright Forward,USDCNY,1000000,-7000000,29/12/2025,29/01/2026,,TRADER
VAL_IMP:2016525,Spot,USD/CNY,abc,1,29/12/2025,,,TRADER
VAL_IMP:2016526,Spot,USD/CNY,1,-7,31/02/2025,,,TRADER
,,,,,,,,
`

func TestReadTrades(t *testing.T) {
	t.Parallel()

	load, err := ReadTrades(strings.NewReader(blotter), NewFolderFilter(nil, nil))
	require.NoError(t, err)

	require.Len(t, load.Trades, 3)
	require.Len(t, load.Rejected, 3)
	assert.Equal(t, 0, load.Filtered)

	spot := load.Trades[0]
	assert.Equal(t, "VAL_IMP:7750129", spot.DealID)
	assert.Equal(t, cashflow.Spot, spot.DealType)
	assert.Equal(t, market.Pair{Base: "JPY", Quote: "CNY"}, spot.Pair)
	assert.Equal(t, "1200000", spot.Amount1.String())
	assert.Equal(t, "-53980.8", spot.Amount2.String())
	assert.Nil(t, spot.RatePrice)
	assert.Equal(t, calendar.Date(2025, 12, 25), spot.ValueDate)
	assert.True(t, spot.MaturityDate.IsZero())
	assert.Equal(t, "TRADER", spot.Folder)

	swap := load.Trades[1]
	assert.Equal(t, cashflow.FXSwap, swap.DealType)
	require.NotNil(t, swap.RatePrice)
	assert.Equal(t, "-0.5", swap.RatePrice.String())
	assert.Equal(t, calendar.Date(2025, 12, 30), swap.MaturityDate)

	separators := load.Trades[2]
	assert.Equal(t, "-1000000", separators.Amount1.String())
	assert.Equal(t, "7010700", separators.Amount2.String())

	assert.Equal(t, "VAL_IMP:2016524", load.Rejected[0].Key)
	assert.ErrorIs(t, load.Rejected[0], market.ErrFormat)
	assert.Equal(t, 5, load.Rejected[0].Line)
	assert.Contains(t, load.Rejected[1].Error(), "Amount1")
	assert.Contains(t, load.Rejected[2].Error(), "Value Date")
}

func TestReadTradesFolderFilter(t *testing.T) {
	t.Parallel()

	filter := NewFolderFilter(nil, []string{"JSH_SWPPOS", "ZF-FXSWAP"})
	load, err := ReadTrades(strings.NewReader(blotter), filter)
	require.NoError(t, err)

	assert.Len(t, load.Trades, 2)
	assert.Equal(t, 1, load.Filtered)
	for _, tr := range load.Trades {
		assert.NotEqual(t, "JSH_SWPPOS", tr.Folder)
	}
}

func TestReadTradesMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := ReadTrades(strings.NewReader("Deal Id,Security\nX,USD/CNY\n"), FolderFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type of Deal")

	_, err = ReadTrades(strings.NewReader(""), FolderFilter{})
	assert.Error(t, err)
}

func TestReadTradesOptionalColumns(t *testing.T) {
	t.Parallel()

	in := `Deal Id,Counterparty,Trade Date,Type of Deal,Security,Amount1,Amount2,Value Date
D1,ACME BANK,2025-12-20,Spot,eur/usd,1000,-1085.5,2025-12-24
`
	load, err := ReadTrades(strings.NewReader(in), FolderFilter{})
	require.NoError(t, err)
	require.Len(t, load.Trades, 1)

	tr := load.Trades[0]
	assert.Equal(t, "ACME BANK", tr.Counterparty)
	assert.Equal(t, calendar.Date(2025, 12, 20), tr.TradeDate)
	assert.Equal(t, calendar.Date(2025, 12, 24), tr.ValueDate)
	assert.Equal(t, "EUR/USD", tr.Pair.String())
	assert.Empty(t, tr.Folder)
}

func TestReadTradesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(blotter), 0644))

	load, err := ReadTradesFile(path, FolderFilter{})
	require.NoError(t, err)
	assert.Len(t, load.Trades, 3)

	_, err = ReadTradesFile(filepath.Join(t.TempDir(), "missing.csv"), FolderFilter{})
	assert.Error(t, err)
}

func TestFolderFilterPrecedence(t *testing.T) {
	t.Parallel()

	f := NewFolderFilter([]string{"CLI"}, []string{"CFG"})
	assert.True(t, f.Skip("CLI"))
	assert.False(t, f.Skip("CFG"))

	f = NewFolderFilter(nil, []string{"CFG", " "})
	assert.True(t, f.Skip(" CFG "))
	assert.Equal(t, []string{"CFG"}, f.Folders())

	assert.False(t, FolderFilter{}.Skip("ANY"))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"JSH_SWPPOS", "ZF-FXSWAP"}, SplitList(" JSH_SWPPOS, ZF-FXSWAP ,,"))
	assert.Nil(t, SplitList(""))
}
