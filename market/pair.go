// market/pair.go
package market

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrFormat is returned for malformed currency pair codes.
var ErrFormat = errors.New("malformed currency pair")

const pairSep = "/"

// Pair is a currency pair, e.g. USD/CNY. Amount1 of a trade is in Base,
// Amount2 in Quote.
type Pair struct {
	Base  string
	Quote string
}

func (p Pair) String() string {
	return p.Base + pairSep + p.Quote
}

func (p Pair) IsZero() bool {
	return p.Base == "" && p.Quote == ""
}

// ParsePair parses a "BASE/QUOTE" code. Both sides are trimmed and
// uppercased.
func ParsePair(code string) (Pair, error) {
	parts := strings.Split(strings.TrimSpace(code), pairSep)
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("%w: %q", ErrFormat, code)
	}
	p := Pair{
		Base:  strings.ToUpper(strings.TrimSpace(parts[0])),
		Quote: strings.ToUpper(strings.TrimSpace(parts[1])),
	}
	if p.Base == "" || p.Quote == "" {
		return Pair{}, fmt.Errorf("%w: %q", ErrFormat, code)
	}
	return p, nil
}

// ParseCompactPair accepts "BASE/QUOTE" as well as the six letter form
// "USDCNY" used in forward points report headers.
func ParseCompactPair(code string) (Pair, error) {
	code = strings.TrimSpace(code)
	if strings.Contains(code, pairSep) {
		return ParsePair(code)
	}
	if len(code) != 6 || !isLetters(code) {
		return Pair{}, fmt.Errorf("%w: %q", ErrFormat, code)
	}
	code = strings.ToUpper(code)
	return Pair{Base: code[:3], Quote: code[3:]}, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// IsPointsBase reports whether the pair's base currency is quoted with the
// 1,000,000 points divisor.
func IsPointsBase(p Pair) bool {
	return IsPointsCurrency(p.Base)
}

func pointsScale(p Pair) int32 {
	if IsPointsBase(p) {
		return pointsBasePointsScale
	}
	return defaultPointsScale
}

// PointsDivisor returns 1,000,000 for points-base pairs and 10,000 otherwise.
// Only the base currency matters.
func PointsDivisor(p Pair) decimal.Decimal {
	return decimal.New(1, pointsScale(p))
}

// PointsToRate converts forward points into a rate difference, i.e.
// pts / PointsDivisor(p). The divisor is a power of ten so the result is
// exact.
func PointsToRate(p Pair, pts decimal.Decimal) decimal.Decimal {
	return pts.Shift(-pointsScale(p))
}
