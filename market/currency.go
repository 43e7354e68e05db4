// market/currency.go
package market

import "github.com/shopspring/decimal"

// CurrencyMeta describes how a currency is quoted in forward points and
// how its cashflows settle.
type CurrencyMeta struct {
	Code string

	// PointsBase currencies quote forward points against a 1,000,000
	// divisor when they are the base of a pair, and settle in whole units.
	PointsBase bool
}

// Currencies is the closed table of currencies with known conventions.
// Codes not listed here use the default conventions.
var Currencies = map[string]CurrencyMeta{
	"AUD": {Code: "AUD"},
	"CAD": {Code: "CAD"},
	"CHF": {Code: "CHF"},
	"CNH": {Code: "CNH"},
	"CNY": {Code: "CNY"},
	"EUR": {Code: "EUR"},
	"GBP": {Code: "GBP"},
	"HKD": {Code: "HKD"},
	"JPY": {Code: "JPY", PointsBase: true},
	"NZD": {Code: "NZD"},
	"SGD": {Code: "SGD"},
	"USD": {Code: "USD"},
}

const (
	defaultPointsScale    = 4 // 10,000
	pointsBasePointsScale = 6 // 1,000,000
)

// IsPointsCurrency reports whether ccy is a points-base currency.
func IsPointsCurrency(ccy string) bool {
	return Currencies[ccy].PointsBase
}

// Normalize applies the settlement convention of ccy to a cashflow amount:
// points-base currencies are rounded to whole units (half away from zero),
// everything else keeps its precision.
func Normalize(ccy string, amt decimal.Decimal) decimal.Decimal {
	if IsPointsCurrency(ccy) {
		return amt.Round(0)
	}
	return amt
}
