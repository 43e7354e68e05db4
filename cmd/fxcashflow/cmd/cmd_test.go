package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blotter = `Deal Id,Type of Deal,Security,Amount1,Amount2,Value Date,Mat. Date,Rate/Price,Folder
VAL_IMP:7750129,Spot,JPY/CNY,1200000,-53980.8,25/12/2025,,,TRADER
VAL_IMP:2016522,FX Swap,USD/CNY,-100000000,701070000,29/12/2025,30/12/2025,-0.5,JSH_SWAP
`

const points = `USD/CNY
Tenor,Settlement Date,Bid Points,Ask Points,Bid Outright,Ask Outright
ON,2025/12/30,-0.7,-0.5,7.0099,7.0101
SP,2025/12/31,0,0,7.0100,7.0110
1W,2026/01/07,-4,-3,7.0096,7.0107
1M,2026/02/02,-22,-21,7.0078,7.0089
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// Commands share package level flag state, so these run sequentially.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	trades := filepath.Join(dir, "blotter.csv")
	pts := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(trades, []byte(blotter), 0o644))
	require.NoError(t, os.WriteFile(pts, []byte(points), 0o644))
	outDir := filepath.Join(dir, "out")

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "fxcashflow version "+version)
	})

	t.Run("run", func(t *testing.T) {
		out, err := execute(t, "run",
			"--input", trades, "--points", pts, "--as-of", "2025-12-22",
			"--out-dir", outDir, "--sqlite", "run.db", "--workers", "2")
		require.NoError(t, err)
		assert.Contains(t, out, "as of 2025-12-22")
		assert.Contains(t, out, "P&L CNY: -1,000.00")

		for _, name := range []string{"cashflows_agg.csv", "cashflows.html", "cashflows_horizon_summary.html", "run.db"} {
			_, err := os.Stat(filepath.Join(outDir, name))
			assert.NoError(t, err, name)
		}
	})

	t.Run("journal show", func(t *testing.T) {
		out, err := execute(t, "journal", "show", "--db", filepath.Join(outDir, "run.db"))
		require.NoError(t, err)
		assert.Contains(t, out, "** Cashflow run 2025-12-22")
		assert.Contains(t, out, ":TRADES: 2")
		assert.Contains(t, out, "| CNY | -1,000.00 |")
	})

	t.Run("journal show unknown run", func(t *testing.T) {
		_, err := execute(t, "journal", "show", "--db", filepath.Join(outDir, "run.db"), "--run", "nope")
		assert.Error(t, err)
	})

	t.Run("curve", func(t *testing.T) {
		out, err := execute(t, "curve", "--points", pts, "--pair", "USDCNY",
			"--as-of", "2025-12-29", "--date", "2026-01-14,2026-03-01")
		require.NoError(t, err)
		assert.Contains(t, out, "ANCHOR 2025-12-29")
		assert.Contains(t, out, "-8.5")
		assert.Contains(t, out, "7.0105")
		assert.Contains(t, out, "outside curve coverage")
	})

	t.Run("config init and validate", func(t *testing.T) {
		path := filepath.Join(dir, "fxcashflow.toml")
		out, err := execute(t, "config", "init", "--output", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Created default configuration")

		out, err = execute(t, "config", "validate", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration valid")
		assert.Contains(t, out, "Output: generatedFile")
	})

	t.Run("run with bad config", func(t *testing.T) {
		_, err := execute(t, "run", "--as-of", "22/12/2025")
		assert.Error(t, err)
	})
}
