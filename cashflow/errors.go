package cashflow

import (
	"errors"
	"fmt"
)

var (
	ErrMissingValueDate    = errors.New("value date missing")
	ErrMissingMaturityDate = errors.New("maturity date missing")
	ErrInvalidMaturityDate = errors.New("maturity date not after value date")
	ErrZeroAmount          = errors.New("amount1 is zero")
	ErrUnsupportedDealType = errors.New("unsupported deal type")
)

// TradeError ties a failure to the trade that caused it.
type TradeError struct {
	DealID string
	Op     string
	Err    error
}

func (e *TradeError) Error() string {
	return fmt.Sprintf("deal %s: %s: %v", e.DealID, e.Op, e.Err)
}

func (e *TradeError) Unwrap() error {
	return e.Err
}
