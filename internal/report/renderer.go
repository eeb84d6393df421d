package report

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

// TextRenderer renders a report as plain text. The production PDF renderer
// is an external collaborator behind service.Renderer; this implementation
// serves the CLI and anything else that wants a human-readable document.
type TextRenderer struct{}

// NewTextRenderer creates a plain-text report renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render formats the report as an aligned text table with the same layout
// as the PDF: header, date range, three summary figures, then one row per
// transaction.
func (r *TextRenderer) Render(_ context.Context, report *model.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", report.Title)
	fmt.Fprintf(&buf, "Date Range: %s to %s\n\n", formatDate(report.StartDate), formatDate(report.EndDate))
	fmt.Fprintf(&buf, "Total Income: %s\n", report.TotalIncome.String())
	fmt.Fprintf(&buf, "Total Expenses: %s\n", report.TotalExpenses.String())
	fmt.Fprintf(&buf, "Balance: %s\n\n", report.Balance.String())

	fmt.Fprintln(&buf, "Transactions:")
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tType\tAmount\tAccount\tCategory")
	for _, row := range report.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Date.Format("2006-01-02"),
			row.Type,
			row.Amount.String(),
			orNA(row.AccountName),
			orNA(row.CategoryName))
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush report table: %w", err)
	}

	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
