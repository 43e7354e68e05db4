package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxcashflow/feed"
	"github.com/rustyeddy/fxcashflow/internal/app"
	"github.com/rustyeddy/fxcashflow/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate cashflow reports from a deal blotter",
	Long: `Read a deal blotter and an optional forward points report, generate
the cashflow legs of every trade and write the aggregated CSV, the cashflow
detail HTML and the horizon summary HTML.

Examples:
  fxcashflow run --input blotter.csv --points points.csv
  fxcashflow run -c fxcashflow.yaml --as-of 2025-12-22 --ignore-folders JSH_TEST,SANDBOX`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runFlags struct {
	input, points, asOf, outDir string
	ignoreFolders, filterConfig string
	outCSV, outHTML, outSummary string
	template, templateSummary   string
	org, sqlite                 string
	workers                     int
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runFlags.input, "input", "i", "", "deal blotter CSV")
	f.StringVarP(&runFlags.points, "points", "p", "", "forward points report CSV")
	f.StringVar(&runFlags.asOf, "as-of", "", "as-of date YYYY-MM-DD (default today)")
	f.StringVarP(&runFlags.outDir, "out-dir", "o", "", "output directory")
	f.StringVar(&runFlags.ignoreFolders, "ignore-folders", "", "comma separated folders to skip; replaces the configured list")
	f.StringVar(&runFlags.filterConfig, "filter-config", "", `JSON filter file {"ignore_folders": [...]}`)
	f.StringVar(&runFlags.outCSV, "out-csv", "", "aggregated cashflow CSV file name")
	f.StringVar(&runFlags.outHTML, "out-html", "", "cashflow detail HTML file name")
	f.StringVar(&runFlags.outSummary, "out-html-summary", "", "horizon summary HTML file name")
	f.StringVar(&runFlags.template, "template", "", "cashflow detail HTML template")
	f.StringVar(&runFlags.templateSummary, "template-summary", "", "horizon summary HTML template")
	f.StringVar(&runFlags.org, "org", "", "also write an Org summary with this file name")
	f.StringVar(&runFlags.sqlite, "sqlite", "", "also export the run to this SQLite file")
	f.IntVarP(&runFlags.workers, "workers", "w", 0, "trades processed concurrently")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	overrides := []struct {
		flag string
		dst  *string
		val  string
	}{
		{"input", &cfg.Input.Trades, runFlags.input},
		{"points", &cfg.Input.Points, runFlags.points},
		{"as-of", &cfg.AsOf, runFlags.asOf},
		{"out-dir", &cfg.Output.Dir, runFlags.outDir},
		{"filter-config", &cfg.Filter.File, runFlags.filterConfig},
		{"out-csv", &cfg.Output.AggregatedCSV, runFlags.outCSV},
		{"out-html", &cfg.Output.CashflowHTML, runFlags.outHTML},
		{"out-html-summary", &cfg.Output.SummaryHTML, runFlags.outSummary},
		{"template", &cfg.Output.CashflowTemplate, runFlags.template},
		{"template-summary", &cfg.Output.SummaryTemplate, runFlags.templateSummary},
		{"org", &cfg.Output.SummaryOrg, runFlags.org},
		{"sqlite", &cfg.Output.SQLite, runFlags.sqlite},
	}
	for _, o := range overrides {
		if flagChanged(cmd, o.flag) {
			*o.dst = o.val
		}
	}
	if flagChanged(cmd, "workers") {
		cfg.Workers = runFlags.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out, err := app.Run(cmd.Context(), app.Options{
		Config:        cfg,
		IgnoreFolders: feed.SplitList(runFlags.ignoreFolders),
		Log:           newLogger(cmd, cfg),
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	res := out.Result
	fmt.Fprintf(w, "Run %s as of %s\n", out.RunID, out.AsOf.Format("2006-01-02"))
	fmt.Fprintf(w, "  Trades: %d (%d rejected rows, %d filtered, %d failed)\n",
		res.Trades, len(out.Trades.Rejected), out.Trades.Filtered, len(res.Failures))
	fmt.Fprintf(w, "  Legs: %d, aggregated rows: %d\n", len(res.Legs), len(res.Aggregated))
	for _, p := range res.PnLByCurrency {
		fmt.Fprintf(w, "  P&L %s: %s\n", p.Currency, report.FormatAmount(p.Amount))
	}
	for _, f := range out.Files {
		fmt.Fprintf(w, "  ✓ %s\n", f)
	}
	return nil
}
