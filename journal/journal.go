// Package journal exports the outputs of one cashflow run to SQLite.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

type RunRecord struct {
	RunID      string
	AsOf       time.Time
	Created    time.Time
	TradesPath string
	PointsPath string
	Trades     int
	Failures   int
	Fallbacks  int
}

// CashflowRecord is one aggregated (date, currency) row.
type CashflowRecord struct {
	RunID    string
	Date     time.Time
	Currency string
	Amount   decimal.Decimal
}

type PnLRecord struct {
	RunID    string
	DealID   string
	Currency string
	Amount   decimal.Decimal
	Source   string
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordCashflow(CashflowRecord) error
	RecordPnL(PnLRecord) error
	Close() error
}
