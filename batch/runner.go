// Package batch runs a blotter through the cashflow engine. A bad trade is
// recorded and skipped; the rest of the batch still runs.
package batch

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxcashflow/cashflow"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	Generator  *cashflow.Generator
	Calculator *cashflow.Calculator
	Log        zerolog.Logger

	// Workers > 1 processes trades concurrently. Output order does not
	// depend on it.
	Workers int
}

func New(p cashflow.Pricer, log zerolog.Logger, workers int) *Runner {
	return &Runner{
		Generator:  cashflow.NewGenerator(p),
		Calculator: cashflow.NewCalculator(p),
		Log:        log,
		Workers:    workers,
	}
}

type Result struct {
	Trades        int
	Legs          []cashflow.Leg
	Aggregated    []cashflow.Aggregated
	PnL           []cashflow.PnLResult
	PnLByCurrency []cashflow.CurrencyAmount
	Failures      []*cashflow.TradeError

	// Fallbacks counts marked trades priced off their own Rate/Price.
	Fallbacks int
}

type outcome struct {
	legs []cashflow.Leg
	pnl  *cashflow.PnLResult
	err  *cashflow.TradeError
}

// Run processes every trade. It only fails when ctx is done.
func (r *Runner) Run(ctx context.Context, trades []cashflow.Trade) (*Result, error) {
	outcomes := make([]outcome, len(trades))

	if r.Workers <= 1 {
		for i := range trades {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = r.process(trades[i])
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.Workers)
		for i := range trades {
			if gctx.Err() != nil {
				break
			}
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = r.process(trades[i])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	res := &Result{Trades: len(trades)}
	for _, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, o.err)
			r.Log.Warn().Str("deal", o.err.DealID).Str("op", o.err.Op).Err(o.err.Err).Msg("trade skipped")
			continue
		}
		res.Legs = append(res.Legs, o.legs...)
		if o.pnl == nil {
			continue
		}
		res.PnL = append(res.PnL, *o.pnl)
		if o.pnl.Source == cashflow.SourceTrade {
			res.Fallbacks++
			r.Log.Debug().Str("deal", o.pnl.DealID).Err(o.pnl.Fallback).Msg("curve unavailable, using trade points")
		}
	}
	res.Aggregated = cashflow.Aggregate(res.Legs)
	res.PnLByCurrency = cashflow.SumPnLByCurrency(res.PnL)

	r.Log.Info().
		Int("trades", res.Trades).
		Int("legs", len(res.Legs)).
		Int("failures", len(res.Failures)).
		Int("fallbacks", res.Fallbacks).
		Msg("batch complete")
	return res, nil
}

func (r *Runner) process(t cashflow.Trade) outcome {
	legs, err := r.Generator.Generate(t)
	if err != nil {
		return outcome{err: asTradeError(t, "cashflow", err)}
	}
	pnl, ok, err := r.Calculator.PnL(t)
	if err != nil {
		return outcome{err: asTradeError(t, "pnl", err)}
	}
	o := outcome{legs: legs}
	if ok {
		o.pnl = &pnl
	}
	return o
}

func asTradeError(t cashflow.Trade, op string, err error) *cashflow.TradeError {
	if te, ok := err.(*cashflow.TradeError); ok {
		return te
	}
	return &cashflow.TradeError{DealID: t.DealID, Op: op, Err: err}
}
