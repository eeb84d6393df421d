package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

// CreateUser persists a new user. The email is unique across all users.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, full_name, email, budget_limit)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, user.ID, user.FullName, user.Email, int64(user.BudgetLimit))
	if err != nil {
		if isUniqueViolation(err) {
			return common.ConflictError("user", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("created user", "id", user.ID, "email", user.Email)
	return nil
}

// GetUser returns the user with the given id, or nil if no such user exists.
func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, full_name, email, budget_limit, created_at
		FROM users
		WHERE id = ?`

	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetUserByEmail returns the user with the given email, or nil if none exists.
func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(email, "email"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, full_name, email, budget_limit, created_at
		FROM users
		WHERE email = ?`

	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

// ListUsers returns all users ordered by creation time.
func (s *SQLiteStorage) ListUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, full_name, email, budget_limit, created_at
		FROM users
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var limit int64
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &limit, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.BudgetLimit = model.Cents(limit)
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// SetBudgetLimit stores the user's monthly budget limit.
func (s *SQLiteStorage) SetBudgetLimit(ctx context.Context, userID string, limit model.Cents) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	query := `UPDATE users SET budget_limit = ? WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, int64(limit), userID); err != nil {
		return fmt.Errorf("failed to set budget limit: %w", err)
	}

	slog.Info("set budget limit", "user_id", userID, "limit", limit.String())
	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var limit int64
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &limit, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	u.BudgetLimit = model.Cents(limit)
	return &u, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
