// Package cashflow turns FX trades into dated per-currency cashflow legs
// and marks curve-valued trades to market.
package cashflow

import (
	"time"

	"github.com/rustyeddy/fxcashflow/market"
	"github.com/shopspring/decimal"
)

// DealType uses the blotter's own labels.
type DealType string

const (
	Spot            DealType = "Spot"
	FXSwap          DealType = "FX Swap"
	OutrightForward DealType = "Outright Forward"
)

// Trade is one blotter row.
type Trade struct {
	DealID       string
	Counterparty string
	Folder       string
	DealType     DealType
	Pair         market.Pair

	Amount1 decimal.Decimal // base currency
	Amount2 decimal.Decimal // quote currency

	// RatePrice holds the trade's forward points; nil when not entered.
	RatePrice *decimal.Decimal

	TradeDate    time.Time
	ValueDate    time.Time
	MaturityDate time.Time // zero for spot
}

// Points returns the trade's Rate/Price, zero when absent.
func (t Trade) Points() decimal.Decimal {
	if t.RatePrice == nil {
		return decimal.Zero
	}
	return *t.RatePrice
}

type LegKind string

const (
	KindSpot    LegKind = "Spot"
	KindForward LegKind = "Outright Forward"
	KindNear    LegKind = "FX Swap - Near"
	KindFar     LegKind = "FX Swap - Far"
)

// Leg is one dated, signed cashflow in a single currency.
type Leg struct {
	Date     time.Time
	Currency string
	Amount   decimal.Decimal
	DealID   string
	Kind     LegKind
}

// Aggregated is the sum of all legs sharing a date and currency.
type Aggregated struct {
	Date     time.Time
	Currency string
	Amount   decimal.Decimal
}

type Source string

const (
	SourceCurve Source = "curve"
	SourceTrade Source = "trade"
)

// PnLResult is the mark-to-market of one trade in its quote currency.
type PnLResult struct {
	DealID   string
	Currency string
	Amount   decimal.Decimal
	Source   Source

	// Fallback says why the curve was not used; nil when Source is curve.
	Fallback error
}

type CurrencyAmount struct {
	Currency string
	Amount   decimal.Decimal
}
