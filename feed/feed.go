// Package feed reads the trade blotter and the forward points report into
// the in-memory structures the cashflow engine consumes.
package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/shopspring/decimal"
)

// RowError is a row that could not be read. Rows with errors are skipped;
// the rest of the file is still loaded.
type RowError struct {
	Line int
	Key  string // deal id or pair, when known
	Err  error
}

func (e *RowError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("line %d (%s): %v", e.Line, e.Key, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// parseDecimal strips thousands separators. Empty input is zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

// parseOptionalDecimal returns nil for empty input.
func parseOptionalDecimal(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseDecimal(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseDate tries each layout in turn. Empty input is the zero time.
func parseDate(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
