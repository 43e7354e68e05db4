package app

import (
	"html/template"
	"io"
	"time"

	"github.com/rustyeddy/fxcashflow/cashflow"
	"github.com/rustyeddy/fxcashflow/report"
)

func renderCashflows(legs []cashflow.Leg, asOf time.Time, tmpl *template.Template) func(io.Writer) error {
	return func(w io.Writer) error { return report.CashflowHTML(w, legs, asOf, tmpl) }
}

func renderSummary(s report.Summary, tmpl *template.Template) func(io.Writer) error {
	return func(w io.Writer) error { return report.HorizonSummaryHTML(w, s, tmpl) }
}
