package curve

import "errors"

var (
	ErrCurveFormat = errors.New("malformed forward points curve")
	ErrNoSpotQuote = errors.New("curve has no SP quote")
	ErrOutOfRange  = errors.New("date outside curve coverage")
	ErrNoCurve     = errors.New("no curve for currency pair")
)
