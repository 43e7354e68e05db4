package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ Journal = (*SQLite)(nil)

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens path and recreates the export tables, discarding any
// earlier run stored there.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// OpenSQLite opens an existing export read-only.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	return insertRun(context.Background(), j.db, r)
}

func (j *SQLite) RecordCashflow(c CashflowRecord) error {
	return insertCashflow(context.Background(), j.db, c)
}

func (j *SQLite) RecordPnL(p PnLRecord) error {
	return insertPnL(context.Background(), j.db, p)
}

// Export writes a run with its cashflows and P&L in one transaction.
func (j *SQLite) Export(ctx context.Context, run RunRecord, flows []CashflowRecord, pnl []PnLRecord) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRun(ctx, tx, run); err != nil {
		return fmt.Errorf("run %s: %w", run.RunID, err)
	}
	for _, c := range flows {
		c.RunID = run.RunID
		if err := insertCashflow(ctx, tx, c); err != nil {
			return fmt.Errorf("cashflow %s %s: %w", c.Date.Format(dateLayout), c.Currency, err)
		}
	}
	for _, p := range pnl {
		p.RunID = run.RunID
		if err := insertPnL(ctx, tx, p); err != nil {
			return fmt.Errorf("pnl %s: %w", p.DealID, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func insertRun(ctx context.Context, db execer, r RunRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, as_of, created, trades_path, points_path, trades, failures, fallbacks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.AsOf.Format(dateLayout), r.Created.UTC().Format(time.RFC3339),
		r.TradesPath, r.PointsPath, r.Trades, r.Failures, r.Fallbacks,
	)
	return err
}

func insertCashflow(ctx context.Context, db execer, c CashflowRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO cashflows (run_id, date, currency, amount)
		VALUES (?, ?, ?, ?)`,
		c.RunID, c.Date.Format(dateLayout), c.Currency, c.Amount.String(),
	)
	return err
}

func insertPnL(ctx context.Context, db execer, p PnLRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO pnl (run_id, deal_id, currency, amount, source)
		VALUES (?, ?, ?, ?, ?)`,
		p.RunID, p.DealID, p.Currency, p.Amount.String(), p.Source,
	)
	return err
}
