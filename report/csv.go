package report

import (
	"encoding/csv"
	"io"

	"github.com/rustyeddy/fxcashflow/cashflow"
)

var aggregatedHeader = []string{"Date", "Currency", "Cashflow"}

// WriteAggregatedCSV writes rows as Date,Currency,Cashflow with ISO dates
// and unrounded amounts.
func WriteAggregatedCSV(w io.Writer, rows []cashflow.Aggregated) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(aggregatedHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{formatDate(r.Date), r.Currency, r.Amount.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteAggregatedCSVFile(path string, rows []cashflow.Aggregated) error {
	return WriteFile(path, func(w io.Writer) error { return WriteAggregatedCSV(w, rows) })
}
