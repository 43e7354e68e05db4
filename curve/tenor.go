package curve

import (
	"fmt"
	"strings"
)

// Tenor is a named settlement bucket of a forward points curve.
type Tenor string

const (
	ON  Tenor = "ON"
	TN  Tenor = "TN"
	SP  Tenor = "SP"
	SN  Tenor = "SN"
	W1  Tenor = "1W"
	W2  Tenor = "2W"
	W3  Tenor = "3W"
	M1  Tenor = "1M"
	M2  Tenor = "2M"
	M3  Tenor = "3M"
	M4  Tenor = "4M"
	M5  Tenor = "5M"
	M6  Tenor = "6M"
	M9  Tenor = "9M"
	Y1  Tenor = "1Y"
	M18 Tenor = "18M"
	Y2  Tenor = "2Y"
	Y3  Tenor = "3Y"
	Y5  Tenor = "5Y"
)

// Tenors lists the supported tenors, shortest first. 5Y is the longest.
var Tenors = []Tenor{ON, TN, SP, SN, W1, W2, W3, M1, M2, M3, M4, M5, M6, M9, Y1, M18, Y2, Y3, Y5}

var tenorAliases = map[string]Tenor{
	"O/N":  ON,
	"T/N":  TN,
	"S/N":  SN,
	"SPOT": SP,
	"12M":  Y1,
	"24M":  Y2,
}

// ParseTenor parses a tenor label as it appears in forward points reports.
func ParseTenor(s string) (Tenor, error) {
	label := strings.ToUpper(strings.TrimSpace(s))
	if t, ok := tenorAliases[label]; ok {
		return t, nil
	}
	for _, t := range Tenors {
		if string(t) == label {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tenor %q", ErrCurveFormat, s)
}
