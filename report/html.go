package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/cashflow"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	cashflowTemplate = "cashflows.html.tmpl"
	summaryTemplate  = "summary.html.tmpl"
)

var funcs = template.FuncMap{
	"amount": FormatAmount,
	"date":   formatDate,
}

// DefaultCashflowTemplate returns the embedded cashflow detail template.
func DefaultCashflowTemplate() *template.Template {
	return template.Must(template.New(cashflowTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+cashflowTemplate))
}

// DefaultSummaryTemplate returns the embedded horizon summary template.
func DefaultSummaryTemplate() *template.Template {
	return template.Must(template.New(summaryTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+summaryTemplate))
}

// LoadTemplate parses the template at path with the report functions
// (amount, date) available. An empty path yields fallback.
func LoadTemplate(path string, fallback *template.Template) (*template.Template, error) {
	if path == "" {
		return fallback, nil
	}
	t, err := template.New(filepath.Base(path)).Funcs(funcs).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}

type cashflowPage struct {
	AsOf time.Time
	Legs []cashflow.Leg
}

// CashflowHTML renders the legs settling on or after asOf, ordered by date
// then currency. A nil tmpl uses the embedded default.
func CashflowHTML(w io.Writer, legs []cashflow.Leg, asOf time.Time, tmpl *template.Template) error {
	if tmpl == nil {
		tmpl = DefaultCashflowTemplate()
	}
	asOf = calendar.Day(asOf)

	page := cashflowPage{AsOf: asOf}
	for _, l := range legs {
		if !calendar.Day(l.Date).Before(asOf) {
			page.Legs = append(page.Legs, l)
		}
	}
	sort.SliceStable(page.Legs, func(i, j int) bool {
		a, b := page.Legs[i], page.Legs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Currency < b.Currency
	})
	return tmpl.Execute(w, page)
}

// HorizonSummaryHTML renders s through tmpl, or the embedded default when
// tmpl is nil.
func HorizonSummaryHTML(w io.Writer, s Summary, tmpl *template.Template) error {
	if tmpl == nil {
		tmpl = DefaultSummaryTemplate()
	}
	return tmpl.Execute(w, s)
}

// WriteFile creates path and hands it to render.
func WriteFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
