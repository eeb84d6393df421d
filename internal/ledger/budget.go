package ledger

import (
	"context"
	"fmt"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/service"
)

// BudgetMonitor compares a user's expense total against their configured
// limit. It never blocks a transaction; exceeding the limit only produces
// an advisory message.
type BudgetMonitor struct {
	store service.Storage
}

// NewBudgetMonitor creates a BudgetMonitor backed by the given store.
func NewBudgetMonitor(store service.Storage) *BudgetMonitor {
	return &BudgetMonitor{store: store}
}

// Check returns the advisory message when totalExpenses exceeds limit, and
// the empty string otherwise. Pure function over already-fetched data.
func (m *BudgetMonitor) Check(totalExpenses, limit model.Cents) string {
	if totalExpenses <= limit {
		return ""
	}
	return fmt.Sprintf("You have exceeded your budget limit of %s. Your current expenses are %s.",
		limit.String(), totalExpenses.String())
}

// SetBudgetLimit stores the user's budget limit. The limit must be
// non-negative.
func (m *BudgetMonitor) SetBudgetLimit(ctx context.Context, userID string, limit model.Cents) error {
	if limit < 0 {
		return common.ValidationError("budget limit", "must be non-negative")
	}

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return common.NotFoundError("user", userID)
	}

	return m.store.SetBudgetLimit(ctx, userID, limit)
}

// GetBudgetLimit returns the user's stored budget limit.
func (m *BudgetMonitor) GetBudgetLimit(ctx context.Context, userID string) (model.Cents, error) {
	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, common.NotFoundError("user", userID)
	}
	return user.BudgetLimit, nil
}
