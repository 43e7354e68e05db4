package report

import (
	"fmt"
	"strings"
	"time"
)

// FormatRunOrg renders s as an Org-mode block for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; horizon, P&L and spot rates
// follow as tables.
func FormatRunOrg(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Cashflow run %s (%s)\n", formatDate(s.AsOf), shortID(s.RunID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":RUN_ID: %s\n", s.RunID)
	fmt.Fprintf(&b, ":AS_OF: %s\n", formatDate(s.AsOf))
	if !s.Generated.IsZero() {
		fmt.Fprintf(&b, ":GENERATED: %s\n", s.Generated.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, ":TRADES: %d\n", s.Trades)
	fmt.Fprintf(&b, ":FAILURES: %d\n", s.Failures)
	fmt.Fprintf(&b, ":FALLBACKS: %d\n", s.Fallbacks)
	fmt.Fprintf(&b, ":LEGS: %d\n", len(s.Legs))
	b.WriteString(":END:\n\n")

	b.WriteString("*** Horizon\n")
	b.WriteString("| Horizon | Currency | Net |\n|-\n")
	for _, bt := range s.Horizon() {
		for _, t := range bt.Totals {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", bt.Bucket, t.Currency, FormatAmount(t.Amount))
		}
	}

	b.WriteString("\n*** P&L\n")
	if len(s.PnL) == 0 {
		b.WriteString("- none\n")
	} else {
		b.WriteString("| Currency | P&L |\n|-\n")
		for _, p := range s.PnL {
			fmt.Fprintf(&b, "| %s | %s |\n", p.Currency, FormatAmount(p.Amount))
		}
	}

	b.WriteString("\n*** Spot\n")
	if len(s.Spot) == 0 {
		b.WriteString("- none\n")
	} else {
		b.WriteString("| Pair | Rate |\n|-\n")
		for _, q := range s.Spot {
			fmt.Fprintf(&b, "| %s | %s |\n", q.Pair, q.Rate)
		}
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
