package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

const runColumns = `run_id, as_of, created, trades_path, points_path, trades, failures, fallbacks`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec           RunRecord
		asOf, created string
	)
	err := row.Scan(&rec.RunID, &asOf, &created, &rec.TradesPath, &rec.PointsPath,
		&rec.Trades, &rec.Failures, &rec.Fallbacks)
	if err != nil {
		return RunRecord{}, err
	}
	if rec.AsOf, err = time.Parse(dateLayout, asOf); err != nil {
		return RunRecord{}, fmt.Errorf("as_of: %w", err)
	}
	if rec.Created, err = time.Parse(time.RFC3339, created); err != nil {
		return RunRecord{}, fmt.Errorf("created: %w", err)
	}
	return rec, nil
}

// GetRun returns the run with the given ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return rec, err
}

// LatestRun returns the most recently created run.
func (j *SQLite) LatestRun(ctx context.Context) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created DESC, run_id DESC LIMIT 1`)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("run: %w", ErrNotFound)
	}
	return rec, err
}

// ListCashflows returns a run's aggregated cashflows ordered by date then
// currency.
func (j *SQLite) ListCashflows(ctx context.Context, runID string) ([]CashflowRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, date, currency, amount
		FROM cashflows
		WHERE run_id = ?
		ORDER BY date ASC, currency ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CashflowRecord
	for rows.Next() {
		var (
			rec          CashflowRecord
			date, amount string
		)
		if err := rows.Scan(&rec.RunID, &date, &rec.Currency, &amount); err != nil {
			return nil, err
		}
		if rec.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("cashflow date: %w", err)
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("cashflow amount: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPnL returns a run's per-trade P&L in insertion order.
func (j *SQLite) ListPnL(ctx context.Context, runID string) ([]PnLRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, deal_id, currency, amount, source
		FROM pnl
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PnLRecord
	for rows.Next() {
		var (
			rec    PnLRecord
			amount string
		)
		if err := rows.Scan(&rec.RunID, &rec.DealID, &rec.Currency, &amount, &rec.Source); err != nil {
			return nil, err
		}
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("pnl amount: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
