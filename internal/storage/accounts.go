package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

const accountColumns = `id, user_id, name, type, balance, currency, created_at, updated_at`

// CreateAccount persists a new account.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (id, user_id, name, type, balance, currency)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		account.ID, account.UserID, account.Name, string(account.Type),
		int64(account.Balance), account.Currency)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ConflictError("account", account.Name)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("created account",
		"id", account.ID,
		"user_id", account.UserID,
		"name", account.Name,
		"balance", account.Balance.String())
	return nil
}

// GetAccount returns the account with the given id regardless of owner, or
// nil if no such account exists. Callers use it to tell "not found" apart
// from "owned by someone else".
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return scanAccount(s.db.QueryRowContext(ctx, query, id))
}

// GetAccountForUser returns the account matching both id and owner, or nil.
func (s *SQLiteStorage) GetAccountForUser(ctx context.Context, userID, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ? AND user_id = ?`
	return scanAccount(s.db.QueryRowContext(ctx, query, id, userID))
}

// GetAccountByName returns the user's account with the given name, or nil.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, userID, name string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = ? AND name = ?`
	return scanAccount(s.db.QueryRowContext(ctx, query, userID, name))
}

// ListAccounts returns all accounts owned by the user.
func (s *SQLiteStorage) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = ? ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var balance int64
		var accountType string
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &accountType, &balance,
			&a.Currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = model.AccountType(accountType)
		a.Balance = model.Cents(balance)
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// UpdateAccount persists the account's mutable fields.
func (s *SQLiteStorage) UpdateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	query := `
		UPDATE accounts
		SET name = ?, type = ?, balance = ?, currency = ?
		WHERE id = ?`

	_, err := s.db.ExecContext(ctx, query,
		account.Name, string(account.Type), int64(account.Balance), account.Currency, account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ConflictError("account", account.Name)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// DeleteAccount removes the account. The account's transactions go with it
// via the foreign-key cascade.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("deleted account", "id", id)
	return nil
}

// Tx implementations for account operations.

// GetAccount returns the account with the given id within the transaction.
func (t *sqliteTx) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return scanAccount(t.tx.QueryRowContext(ctx, query, id))
}

// AdjustAccountBalance adds a signed delta to the stored balance as a
// single atomic statement. Never a read-then-write from the caller, so
// concurrent adjustments cannot lose updates.
func (t *sqliteTx) AdjustAccountBalance(ctx context.Context, accountID string, delta model.Cents) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return err
	}

	query := `UPDATE accounts SET balance = balance + ? WHERE id = ?`

	result, err := t.tx.ExecContext(ctx, query, int64(delta), accountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.NotFoundError("account", accountID)
	}

	return nil
}

func scanAccount(row *sql.Row) (*model.Account, error) {
	var a model.Account
	var balance int64
	var accountType string
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &accountType, &balance,
		&a.Currency, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Account not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	a.Type = model.AccountType(accountType)
	a.Balance = model.Cents(balance)
	return &a, nil
}
