package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/market"
)

// Blotter column headers.
const (
	ColDealID       = "Deal Id"
	ColDealType     = "Type of Deal"
	ColSecurity     = "Security"
	ColAmount1      = "Amount1"
	ColAmount2      = "Amount2"
	ColValueDate    = "Value Date"
	ColMaturityDate = "Mat. Date"
	ColRatePrice    = "Rate/Price"
	ColFolder       = "Folder"
	ColCounterparty = "Counterparty"
	ColTradeDate    = "Trade Date"
)

var requiredTradeCols = []string{ColDealID, ColDealType, ColSecurity, ColAmount1, ColAmount2, ColValueDate}

// Blotter dates are DD/MM/YYYY; ISO dates are accepted too.
var blotterDateLayouts = []string{"02/01/2006", "2006-01-02"}

// TradeLoad is the outcome of reading a blotter.
type TradeLoad struct {
	Trades   []cashflow.Trade
	Rejected []*RowError
	Filtered int // rows dropped by the folder filter
}

// ReadTradesFile opens path and reads it with ReadTrades.
func ReadTradesFile(path string, filter FolderFilter) (*TradeLoad, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer f.Close()
	return ReadTrades(f, filter)
}

// ReadTrades reads a CSV blotter with a header row. Columns are matched by
// header name. Rows that fail to parse are returned in Rejected.
func ReadTrades(r io.Reader, filter FolderFilter) (*TradeLoad, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("trades: empty file")
		}
		return nil, fmt.Errorf("trades: read header: %w", err)
	}
	cols := indexColumns(header)
	for _, name := range requiredTradeCols {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("trades: missing column %q", name)
		}
	}

	load := &TradeLoad{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("trades: %w", err)
		}
		line, _ := cr.FieldPos(0)
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if isBlank(row) {
			continue
		}
		if filter.Skip(get(ColFolder)) {
			load.Filtered++
			continue
		}

		t, err := parseTrade(get)
		if err != nil {
			load.Rejected = append(load.Rejected, &RowError{Line: line, Key: get(ColDealID), Err: err})
			continue
		}
		load.Trades = append(load.Trades, t)
	}
	return load, nil
}

func parseTrade(get func(string) string) (cashflow.Trade, error) {
	t := cashflow.Trade{
		DealID:       get(ColDealID),
		Counterparty: get(ColCounterparty),
		Folder:       get(ColFolder),
		DealType:     cashflow.DealType(get(ColDealType)),
	}

	var err error
	if t.Pair, err = market.ParsePair(get(ColSecurity)); err != nil {
		return t, err
	}
	if t.Amount1, err = parseDecimal(get(ColAmount1)); err != nil {
		return t, fmt.Errorf("%s: %w", ColAmount1, err)
	}
	if t.Amount2, err = parseDecimal(get(ColAmount2)); err != nil {
		return t, fmt.Errorf("%s: %w", ColAmount2, err)
	}
	if t.RatePrice, err = parseOptionalDecimal(get(ColRatePrice)); err != nil {
		return t, fmt.Errorf("%s: %w", ColRatePrice, err)
	}
	if t.TradeDate, err = parseDate(get(ColTradeDate), blotterDateLayouts...); err != nil {
		return t, fmt.Errorf("%s: %w", ColTradeDate, err)
	}
	if t.ValueDate, err = parseDate(get(ColValueDate), blotterDateLayouts...); err != nil {
		return t, fmt.Errorf("%s: %w", ColValueDate, err)
	}
	if t.MaturityDate, err = parseDate(get(ColMaturityDate), blotterDateLayouts...); err != nil {
		return t, fmt.Errorf("%s: %w", ColMaturityDate, err)
	}
	return t, nil
}

// indexColumns maps trimmed header names to their index. A UTF-8 BOM on
// the first header is dropped.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
