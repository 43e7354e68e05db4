// Package app wires the feeds, the batch runner and the report writers into
// a single cashflow run.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxcashflow/batch"
	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/config"
	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/rustyeddy/fxcashflow/feed"
	"github.com/rustyeddy/fxcashflow/journal"
	"github.com/rustyeddy/fxcashflow/pkg/id"
	"github.com/rustyeddy/fxcashflow/report"
)

type Options struct {
	Config *config.Config

	// IgnoreFolders from the command line. When non-empty it replaces
	// the configured list.
	IgnoreFolders []string

	Now func() time.Time
	Log zerolog.Logger
}

// Outcome describes a finished run.
type Outcome struct {
	RunID    string
	AsOf     time.Time
	Trades   *feed.TradeLoad
	Curves   *feed.CurveLoad
	Result   *batch.Result
	Summary  report.Summary
	Filtered []string
	Files    []string
}

// Run reads the inputs named by opts.Config, processes every trade and
// writes the configured outputs. Unreadable inputs and unwritable outputs
// are errors; bad rows and bad trades are logged and skipped.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	cfg := opts.Config
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	log := opts.Log
	started := now()

	asOf, err := cfg.AsOfDate(started)
	if err != nil {
		return nil, err
	}
	out := &Outcome{RunID: id.At(started), AsOf: asOf}
	log = log.With().Str("run", out.RunID).Logger()

	filter, err := folderFilter(cfg, opts.IgnoreFolders)
	if err != nil {
		return nil, err
	}
	out.Filtered = filter.Folders()

	out.Trades, err = feed.ReadTradesFile(cfg.Input.Trades, filter)
	if err != nil {
		return nil, err
	}
	for _, re := range out.Trades.Rejected {
		log.Warn().Int("line", re.Line).Str("deal", re.Key).Err(re.Err).Msg("blotter row rejected")
	}
	log.Info().
		Str("file", cfg.Input.Trades).
		Int("trades", len(out.Trades.Trades)).
		Int("rejected", len(out.Trades.Rejected)).
		Int("filtered", out.Trades.Filtered).
		Msg("blotter loaded")

	var curves *curve.Set
	if cfg.Input.Points != "" {
		out.Curves, err = feed.ReadCurvesFile(cfg.Input.Points)
		if err != nil {
			return nil, err
		}
		for _, re := range out.Curves.Rejected {
			log.Warn().Int("line", re.Line).Str("pair", re.Key).Err(re.Err).Msg("points row rejected")
		}
		curves = out.Curves.Curves
		log.Info().Str("file", cfg.Input.Points).Int("curves", curves.Len()).Msg("forward points loaded")
	} else {
		log.Info().Msg("no forward points report; far legs use trade points")
	}

	runner := batch.New(cashflow.Pricer{Curves: curves, AsOf: asOf}, log, cfg.Workers)
	out.Result, err = runner.Run(ctx, out.Trades.Trades)
	if err != nil {
		return nil, err
	}

	out.Summary = report.Summary{
		RunID:     out.RunID,
		AsOf:      asOf,
		Generated: started,
		Trades:    out.Result.Trades,
		Failures:  len(out.Result.Failures),
		Fallbacks: out.Result.Fallbacks,
		Legs:      out.Result.Legs,
		PnL:       out.Result.PnLByCurrency,
		Spot:      curves.SpotRates(),
	}

	if err := writeOutputs(ctx, cfg, out); err != nil {
		return nil, err
	}
	for _, f := range out.Files {
		log.Info().Str("file", f).Msg("written")
	}
	return out, nil
}

func folderFilter(cfg *config.Config, cli []string) (feed.FolderFilter, error) {
	configured := cfg.Filter.IgnoreFolders
	if cfg.Filter.File != "" {
		fromFile, err := config.LoadFilterFile(cfg.Filter.File)
		if err != nil {
			return feed.FolderFilter{}, err
		}
		configured = append(append([]string(nil), configured...), fromFile...)
	}
	return feed.NewFolderFilter(cli, configured), nil
}

func writeOutputs(ctx context.Context, cfg *config.Config, out *Outcome) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	cashflowTmpl, err := report.LoadTemplate(cfg.Output.CashflowTemplate, report.DefaultCashflowTemplate())
	if err != nil {
		return err
	}
	summaryTmpl, err := report.LoadTemplate(cfg.Output.SummaryTemplate, report.DefaultSummaryTemplate())
	if err != nil {
		return err
	}

	res := out.Result
	write := func(name string, fn func(path string) error) error {
		path := cfg.OutputPath(name)
		if path == "" {
			return nil
		}
		if err := fn(path); err != nil {
			return err
		}
		out.Files = append(out.Files, path)
		return nil
	}

	if err := write(cfg.Output.AggregatedCSV, func(path string) error {
		return report.WriteAggregatedCSVFile(path, res.Aggregated)
	}); err != nil {
		return err
	}
	if err := write(cfg.Output.CashflowHTML, func(path string) error {
		return report.WriteFile(path, renderCashflows(res.Legs, out.AsOf, cashflowTmpl))
	}); err != nil {
		return err
	}
	if err := write(cfg.Output.SummaryHTML, func(path string) error {
		return report.WriteFile(path, renderSummary(out.Summary, summaryTmpl))
	}); err != nil {
		return err
	}
	if err := write(cfg.Output.SummaryOrg, func(path string) error {
		return os.WriteFile(path, []byte(report.FormatRunOrg(out.Summary)), 0o644)
	}); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.SummaryOrg, err)
	}
	return write(cfg.Output.SQLite, func(path string) error {
		return exportSQLite(ctx, path, cfg, out)
	})
}

func exportSQLite(ctx context.Context, path string, cfg *config.Config, out *Outcome) error {
	j, err := journal.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("sqlite %s: %w", path, err)
	}

	run := journal.RunRecord{
		RunID:      out.RunID,
		AsOf:       out.AsOf,
		Created:    out.Summary.Generated,
		TradesPath: cfg.Input.Trades,
		PointsPath: cfg.Input.Points,
		Trades:     out.Summary.Trades,
		Failures:   out.Summary.Failures,
		Fallbacks:  out.Summary.Fallbacks,
	}
	flows := make([]journal.CashflowRecord, 0, len(out.Result.Aggregated))
	for _, a := range out.Result.Aggregated {
		flows = append(flows, journal.CashflowRecord{Date: a.Date, Currency: a.Currency, Amount: a.Amount})
	}
	pnl := make([]journal.PnLRecord, 0, len(out.Result.PnL))
	for _, p := range out.Result.PnL {
		pnl = append(pnl, journal.PnLRecord{DealID: p.DealID, Currency: p.Currency, Amount: p.Amount, Source: string(p.Source)})
	}
	if err := j.Export(ctx, run, flows, pnl); err != nil {
		j.Close()
		return fmt.Errorf("sqlite %s: %w", path, err)
	}
	return j.Close()
}
