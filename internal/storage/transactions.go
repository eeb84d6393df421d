package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

const transactionColumns = `id, user_id, account_id, category_id, type, amount,
	description, transaction_date, created_at, updated_at`

// GetTransaction returns the transaction with the given id regardless of
// owner, or nil if no such transaction exists.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	return scanTransaction(s.db.QueryRowContext(ctx, query, id))
}

// GetTransactionForUser returns the transaction matching both id and owner
// with its account and category (and the category's parent) resolved, or nil.
func (s *SQLiteStorage) GetTransactionForUser(ctx context.Context, userID, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ?`
	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil || txn == nil {
		return txn, err
	}

	if err := s.resolveTransactionRelations(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns all transactions owned by the user, each with
// its account and category resolved.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ? ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	for i := range transactions {
		if err := s.resolveTransactionRelations(ctx, &transactions[i]); err != nil {
			return nil, err
		}
	}

	slog.Debug("retrieved transactions", "user_id", userID, "count", len(transactions))
	return transactions, nil
}

// GetExpenseTotal returns the sum of the user's expense transaction amounts.
func (s *SQLiteStorage) GetExpenseTotal(ctx context.Context, userID string) (model.Cents, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND type = 'expense'`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return model.Cents(total), nil
}

// GetReportRows returns the user's transactions in the inclusive date
// range, with account and category names left-joined (either may be
// absent). Rows come back in persistence order.
func (s *SQLiteStorage) GetReportRows(ctx context.Context, userID string, start, end *time.Time) ([]model.ReportRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}

	query := `
		SELECT t.transaction_date, t.type, t.amount, a.name, c.name
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?`
	args := []any{userID}

	if start != nil {
		query += ` AND t.transaction_date >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND t.transaction_date <= ?`
		args = append(args, *end)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	var report []model.ReportRow
	for rows.Next() {
		var r model.ReportRow
		var amount int64
		var txType string
		var accountName, categoryName sql.NullString
		if err := rows.Scan(&r.Date, &txType, &amount, &accountName, &categoryName); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		r.Type = model.TransactionType(txType)
		r.Amount = model.Cents(amount)
		r.AccountName = accountName.String
		r.CategoryName = categoryName.String
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return report, nil
}

// Tx implementations for transaction operations.

// CreateTransaction inserts a transaction row within the atomic unit.
func (t *sqliteTx) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	var categoryID sql.NullString
	if txn.CategoryID != nil {
		categoryID = sql.NullString{String: *txn.CategoryID, Valid: true}
	}

	query := `
		INSERT INTO transactions (id, user_id, account_id, category_id, type, amount, description, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := t.tx.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.AccountID, categoryID,
		string(txn.Type), int64(txn.Amount), txn.Description, txn.Date)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetTransaction returns the transaction with the given id within the
// atomic unit, or nil.
func (t *sqliteTx) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	return scanTransaction(t.tx.QueryRowContext(ctx, query, id))
}

// UpdateTransaction persists the transaction's mutable fields within the
// atomic unit. Account and category are immutable once set.
func (t *sqliteTx) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET type = ?, amount = ?, description = ?, transaction_date = ?
		WHERE id = ?`

	_, err := t.tx.ExecContext(ctx, query,
		string(txn.Type), int64(txn.Amount), txn.Description, txn.Date, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes the transaction row within the atomic unit.
func (t *sqliteTx) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.NotFoundError("transaction", id)
	}

	return nil
}

// resolveTransactionRelations loads the transaction's account and category,
// plus the category's parent when present.
func (s *SQLiteStorage) resolveTransactionRelations(ctx context.Context, txn *model.Transaction) error {
	account, err := s.GetAccount(ctx, txn.AccountID)
	if err != nil {
		return err
	}
	txn.Account = account

	if txn.CategoryID == nil {
		return nil
	}

	category, err := s.GetCategory(ctx, *txn.CategoryID)
	if err != nil {
		return err
	}
	if category != nil && category.ParentID != nil {
		parent, err := s.GetCategory(ctx, *category.ParentID)
		if err != nil {
			return err
		}
		category.Parent = parent
	}
	txn.Category = category

	return nil
}

func scanTransaction(row *sql.Row) (*model.Transaction, error) {
	var txn model.Transaction
	var categoryID, description sql.NullString
	var amount int64
	var txType string
	err := row.Scan(&txn.ID, &txn.UserID, &txn.AccountID, &categoryID, &txType,
		&amount, &description, &txn.Date, &txn.CreatedAt, &txn.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Transaction not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	txn.Description = description.String
	txn.Type = model.TransactionType(txType)
	txn.Amount = model.Cents(amount)
	return &txn, nil
}

func scanTransactionRow(rows *sql.Rows) (*model.Transaction, error) {
	var txn model.Transaction
	var categoryID, description sql.NullString
	var amount int64
	var txType string
	if err := rows.Scan(&txn.ID, &txn.UserID, &txn.AccountID, &categoryID, &txType,
		&amount, &description, &txn.Date, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	if categoryID.Valid {
		txn.CategoryID = &categoryID.String
	}
	txn.Description = description.String
	txn.Type = model.TransactionType(txType)
	txn.Amount = model.Cents(amount)
	return &txn, nil
}
