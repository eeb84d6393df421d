package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/service"
)

// TransactionProcessor creates, amends, and removes transactions. It is
// the only writer of account balances: every mutation applies its signed
// balance delta and its row change inside one storage transaction, so the
// stored balance always equals the signed sum of the account's live
// transactions.
type TransactionProcessor struct {
	store  service.Storage
	budget *BudgetMonitor
}

// NewTransactionProcessor creates a TransactionProcessor backed by the
// given store, with budget monitoring attached to successful writes.
func NewTransactionProcessor(store service.Storage, budget *BudgetMonitor) *TransactionProcessor {
	return &TransactionProcessor{store: store, budget: budget}
}

// CreateTransaction records a new transaction and applies its delta to the
// account balance atomically. The category is optional (empty id).
// Both the account and the category must belong to the caller. On success
// the budget monitor may contribute a non-fatal advisory message; the
// transaction succeeds either way.
func (p *TransactionProcessor) CreateTransaction(ctx context.Context, userID, accountID, categoryID string, amount model.Cents, txType model.TransactionType, description string, date time.Time) (*model.Transaction, string, error) {
	if amount <= 0 {
		return nil, "", common.ValidationError("amount", "must be strictly positive")
	}
	if !txType.Valid() {
		return nil, "", common.ValidationError("type", "must be income or expense")
	}
	if date.IsZero() {
		date = time.Now()
	}

	user, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", common.NotFoundError("user", userID)
	}

	account, err := p.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, "", err
	}
	if account == nil {
		return nil, "", common.NotFoundError("account", accountID)
	}
	if account.UserID != userID {
		return nil, "", common.ForbiddenError("account", accountID, userID)
	}

	var catID *string
	if categoryID != "" {
		category, err := p.store.GetCategory(ctx, categoryID)
		if err != nil {
			return nil, "", err
		}
		if category == nil {
			return nil, "", common.NotFoundError("category", categoryID)
		}
		if category.UserID != userID {
			return nil, "", common.ForbiddenError("category", categoryID, userID)
		}
		catID = &categoryID
	}

	txn := &model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  catID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	// Balance adjustment and row insertion land together or not at all.
	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.AdjustAccountBalance(ctx, accountID, txn.Delta()); err != nil {
		return nil, "", err
	}
	if err := tx.CreateTransaction(ctx, txn); err != nil {
		return nil, "", err
	}
	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("created transaction",
		"id", txn.ID,
		"user_id", userID,
		"account_id", accountID,
		"type", string(txType),
		"amount", amount.String())

	advisory := ""
	if txType == model.TypeExpense {
		total, err := p.store.GetExpenseTotal(ctx, userID)
		if err != nil {
			// The advisory is observability, not enforcement; the
			// transaction already committed.
			slog.Warn("failed to compute expense total for budget check", "error", err)
		} else {
			advisory = p.budget.Check(total, user.BudgetLimit)
		}
	}

	return txn, advisory, nil
}

// ListTransactions returns all transactions owned by the user, each with
// its account and category (and the category's parent) resolved. It fails
// NotFound when the user does not exist.
func (p *TransactionProcessor) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	user, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundError("user", userID)
	}

	return p.store.ListTransactions(ctx, userID)
}

// GetTransaction returns the user's transaction, failing NotFound unless
// it exists and is owned by the user.
func (p *TransactionProcessor) GetTransaction(ctx context.Context, userID, transactionID string) (*model.Transaction, error) {
	txn, err := p.store.GetTransactionForUser(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, common.NotFoundError("transaction", transactionID)
	}
	return txn, nil
}

// UpdateTransaction merges the supplied fields and re-derives the account
// balance: the old contribution is removed and the new one applied in the
// same atomic unit as the row update. Account and category are immutable.
func (p *TransactionProcessor) UpdateTransaction(ctx context.Context, userID, transactionID string, update model.TransactionUpdate) (*model.Transaction, error) {
	if _, err := p.resolveOwned(ctx, userID, transactionID); err != nil {
		return nil, err
	}

	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Re-read inside the atomic unit so the old delta cannot be stale.
	txn, err := tx.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, common.NotFoundError("transaction", transactionID)
	}
	oldDelta := txn.Delta()

	if update.Amount != nil {
		if *update.Amount <= 0 {
			return nil, common.ValidationError("amount", "must be strictly positive")
		}
		txn.Amount = *update.Amount
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, common.ValidationError("type", "must be income or expense")
		}
		txn.Type = *update.Type
	}
	if update.Description != nil {
		txn.Description = *update.Description
	}
	if update.Date != nil {
		txn.Date = *update.Date
	}

	if delta := txn.Delta() - oldDelta; delta != 0 {
		if err := tx.AdjustAccountBalance(ctx, txn.AccountID, delta); err != nil {
			return nil, err
		}
	}
	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction update: %w", err)
	}

	return txn, nil
}

// DeleteTransaction removes the transaction and applies the inverse of its
// balance contribution in the same atomic unit as the row removal.
func (p *TransactionProcessor) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := p.resolveOwned(ctx, userID, transactionID); err != nil {
		return err
	}

	tx, err := p.store.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	txn, err := tx.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn == nil {
		return common.NotFoundError("transaction", transactionID)
	}

	if err := tx.AdjustAccountBalance(ctx, txn.AccountID, -txn.Delta()); err != nil {
		return err
	}
	if err := tx.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction deletion: %w", err)
	}

	slog.Info("deleted transaction", "id", transactionID, "user_id", userID)
	return nil
}

func (p *TransactionProcessor) resolveOwned(ctx context.Context, userID, transactionID string) (*model.Transaction, error) {
	txn, err := p.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, common.NotFoundError("transaction", transactionID)
	}
	if txn.UserID != userID {
		return nil, common.ForbiddenError("transaction", transactionID, userID)
	}
	return txn, nil
}
