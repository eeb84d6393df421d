// Package report aggregates transaction history into normalized report
// models and hands them to the document rendering collaborator.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/service"
)

// Aggregator queries transactions by date range, computes totals, and
// renders reports through an external renderer. It depends only on the
// persisted transaction set, independent of the mutation path.
type Aggregator struct {
	store    service.Storage
	renderer service.Renderer
}

// NewAggregator creates an Aggregator over the given store and renderer.
func NewAggregator(store service.Storage, renderer service.Renderer) *Aggregator {
	return &Aggregator{store: store, renderer: renderer}
}

// BuildReport selects the user's transactions in the inclusive date range
// and computes total income, total expenses, and their difference over the
// filtered set only, never the stored account balances.
func (a *Aggregator) BuildReport(ctx context.Context, userID string, start, end *time.Time) (*model.Report, error) {
	rows, err := a.store.GetReportRows(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		Title:     "Transaction Report",
		StartDate: start,
		EndDate:   end,
		Rows:      rows,
	}

	for _, row := range rows {
		switch row.Type {
		case model.TypeIncome:
			report.TotalIncome += row.Amount
		case model.TypeExpense:
			report.TotalExpenses += row.Amount
		}
	}
	report.Balance = report.TotalIncome - report.TotalExpenses

	return report, nil
}

// GenerateReport builds the report model and hands it to the rendering
// collaborator, returning the resulting byte stream verbatim. Renderer
// failures are retried briefly (the collaborator may be remote) and then
// surface as a generic rendering failure.
func (a *Aggregator) GenerateReport(ctx context.Context, userID string, start, end *time.Time) ([]byte, error) {
	report, err := a.BuildReport(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	var doc []byte
	renderErr := common.WithRetry(ctx, func() error {
		var err error
		doc, err = a.renderer.Render(ctx, report)
		return err
	}, common.RetryOptions{MaxAttempts: 2, InitialDelay: 200 * time.Millisecond})

	if renderErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRenderFailed, renderErr)
	}

	slog.Info("generated report",
		"user_id", userID,
		"rows", len(report.Rows),
		"total_income", report.TotalIncome.String(),
		"total_expenses", report.TotalExpenses.String())

	return doc, nil
}
