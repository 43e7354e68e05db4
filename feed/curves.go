package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/rustyeddy/fxcashflow/market"
)

// Forward points report dates: YYYY/MM/DD, DD/MM/YYYY or ISO.
var pointsDateLayouts = []string{"2006/01/02", "02/01/2006", "2006-01-02"}

// CurveLoad is the outcome of reading a forward points report.
type CurveLoad struct {
	Curves   *curve.Set
	Rejected []*RowError
}

func ReadCurvesFile(path string, opts ...curve.Option) (*CurveLoad, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open points: %w", err)
	}
	defer f.Close()
	return ReadCurves(f, opts...)
}

type quoteGroup struct {
	pair   market.Pair
	line   int
	quotes []curve.Quote
}

// ReadCurves reads a forward points report. Each table is preceded by a
// currency pair header line ("USD/CNY" or "USDCNY", optionally followed by
// free text), may carry a "Tenor,..." column header, and has rows
//
//	Tenor,Settlement Date,Bid Points,Ask Points[,Bid Outright,Ask Outright]
//
// Lines starting with # are comments. Bad rows and curves that fail to load
// are returned in Rejected.
func ReadCurves(r io.Reader, opts ...curve.Option) (*CurveLoad, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	load := &CurveLoad{Curves: curve.NewSet()}
	groups := make(map[market.Pair]*quoteGroup)
	var (
		order []market.Pair
		cur   *quoteGroup
	)
	reject := func(line int, key string, err error) {
		load.Rejected = append(load.Rejected, &RowError{Line: line, Key: key, Err: err})
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row[0] = strings.TrimPrefix(row[0], "\ufeff")
		if isBlank(row) {
			continue
		}
		first := strings.TrimSpace(row[0])

		// Spreadsheet exports pad header lines with empty cells.
		if len(row) == 1 || isBlank(row[1:]) {
			p, err := market.ParseCompactPair(strings.Fields(first)[0])
			if err != nil {
				reject(line, first, err)
				cur = nil
				continue
			}
			if cur = groups[p]; cur == nil {
				cur = &quoteGroup{pair: p, line: line}
				groups[p] = cur
				order = append(order, p)
			}
			continue
		}

		if strings.EqualFold(first, "Tenor") {
			continue
		}
		if cur == nil {
			reject(line, "", errors.New("quote row before any currency pair header"))
			continue
		}
		q, err := parseQuote(row)
		if err != nil {
			reject(line, cur.pair.String(), err)
			continue
		}
		cur.quotes = append(cur.quotes, q)
	}

	for _, p := range order {
		g := groups[p]
		c, err := curve.Load(p, g.quotes, opts...)
		if err != nil {
			reject(g.line, p.String(), err)
			continue
		}
		if err := load.Curves.Add(c); err != nil {
			reject(g.line, p.String(), err)
		}
	}
	return load, nil
}

func parseQuote(row []string) (curve.Quote, error) {
	if len(row) < 4 {
		return curve.Quote{}, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}

	var (
		q   curve.Quote
		err error
	)
	if q.Tenor, err = curve.ParseTenor(row[0]); err != nil {
		return q, err
	}
	if q.Settlement, err = parseDate(row[1], pointsDateLayouts...); err != nil {
		return q, err
	}
	if q.Settlement.IsZero() {
		return q, fmt.Errorf("%s: settlement date missing", q.Tenor)
	}
	if q.BidPoints, err = parseDecimal(row[2]); err != nil {
		return q, fmt.Errorf("%s bid points: %w", q.Tenor, err)
	}
	if q.AskPoints, err = parseDecimal(row[3]); err != nil {
		return q, fmt.Errorf("%s ask points: %w", q.Tenor, err)
	}
	if len(row) >= 6 {
		if q.BidOutright, err = parseDecimal(row[4]); err != nil {
			return q, fmt.Errorf("%s bid outright: %w", q.Tenor, err)
		}
		if q.AskOutright, err = parseDecimal(row[5]); err != nil {
			return q, fmt.Errorf("%s ask outright: %w", q.Tenor, err)
		}
	}
	return q, nil
}
