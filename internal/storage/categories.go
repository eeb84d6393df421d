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

const categoryColumns = `id, user_id, name, parent_id, created_at`

// CreateCategory persists a new category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	var parentID sql.NullString
	if category.ParentID != nil {
		parentID = sql.NullString{String: *category.ParentID, Valid: true}
	}

	query := `
		INSERT INTO categories (id, user_id, name, parent_id)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query, category.ID, category.UserID, category.Name, parentID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ConflictError("category", category.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category",
		"id", category.ID,
		"user_id", category.UserID,
		"name", category.Name)
	return nil
}

// GetCategory returns the category with the given id regardless of owner,
// or nil if no such category exists.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	return scanCategory(s.db.QueryRowContext(ctx, query, id))
}

// GetCategoryForUser returns the category matching both id and owner with
// its parent and direct subcategories populated, or nil.
func (s *SQLiteStorage) GetCategoryForUser(ctx context.Context, userID, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ? AND user_id = ?`
	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil || cat == nil {
		return cat, err
	}

	if err := s.resolveRelations(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// GetCategoryByName returns the user's category with the given name, or nil.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? AND name = ?`
	return scanCategory(s.db.QueryRowContext(ctx, query, userID, name))
}

// ListCategories returns all categories owned by the user, each with parent
// and direct subcategories populated.
func (s *SQLiteStorage) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = ? ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategoryRow(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	// Resolve parent/child links from the already-loaded set; the tree is
	// flat ids in storage, never a cyclic object graph.
	byID := make(map[string]*model.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range categories {
		if categories[i].ParentID == nil {
			continue
		}
		parent, ok := byID[*categories[i].ParentID]
		if !ok {
			continue
		}
		categories[i].Parent = &model.Category{
			ID:        parent.ID,
			UserID:    parent.UserID,
			Name:      parent.Name,
			ParentID:  parent.ParentID,
			CreatedAt: parent.CreatedAt,
		}
		parent.Subcategories = append(parent.Subcategories, model.Category{
			ID:        categories[i].ID,
			UserID:    categories[i].UserID,
			Name:      categories[i].Name,
			ParentID:  categories[i].ParentID,
			CreatedAt: categories[i].CreatedAt,
		})
	}

	slog.Debug("retrieved categories", "user_id", userID, "count", len(categories))
	return categories, nil
}

// UpdateCategory persists the category's name and parent link.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	var parentID sql.NullString
	if category.ParentID != nil {
		parentID = sql.NullString{String: *category.ParentID, Valid: true}
	}

	query := `UPDATE categories SET name = ?, parent_id = ? WHERE id = ?`

	_, err := s.db.ExecContext(ctx, query, category.Name, parentID, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ConflictError("category", category.Name)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// DeleteCategory removes the category. The foreign-key cascade takes its
// subcategories and every transaction referencing any of them; before the
// rows disappear, each cascaded transaction's balance contribution is
// reversed on its account so stored balances keep matching live history.
// The whole sequence is one atomic unit.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Collect the signed contribution of every transaction that the
	// cascade is about to remove, grouped by account.
	query := `
		WITH RECURSIVE doomed(id) AS (
			SELECT ?
			UNION
			SELECT c.id FROM categories c JOIN doomed d ON c.parent_id = d.id
		)
		SELECT t.account_id,
		       SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END)
		FROM transactions t
		WHERE t.category_id IN (SELECT id FROM doomed)
		GROUP BY t.account_id`

	rows, err := tx.QueryContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to sum cascaded transactions: %w", err)
	}

	type reversal struct {
		accountID string
		delta     int64
	}
	var reversals []reversal
	for rows.Next() {
		var r reversal
		if err := rows.Scan(&r.accountID, &r.delta); err != nil {
			_ = rows.Close()
			return fmt.Errorf("failed to scan cascade sum: %w", err)
		}
		reversals = append(reversals, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("error iterating cascade sums: %w", err)
	}
	_ = rows.Close()

	for _, r := range reversals {
		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET balance = balance - ? WHERE id = ?`,
			r.delta, r.accountID); err != nil {
			return fmt.Errorf("failed to reverse cascaded balance: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category deletion: %w", err)
	}

	slog.Info("deleted category", "id", id, "accounts_adjusted", len(reversals))
	return nil
}

// resolveRelations loads the category's parent and direct subcategories.
func (s *SQLiteStorage) resolveRelations(ctx context.Context, cat *model.Category) error {
	if cat.ParentID != nil {
		parent, err := s.GetCategory(ctx, *cat.ParentID)
		if err != nil {
			return err
		}
		cat.Parent = parent
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = ? ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, cat.ID)
	if err != nil {
		return fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		sub, err := scanCategoryRow(rows)
		if err != nil {
			return err
		}
		cat.Subcategories = append(cat.Subcategories, *sub)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating subcategories: %w", err)
	}

	return nil
}

func scanCategory(row *sql.Row) (*model.Category, error) {
	var cat model.Category
	var parentID sql.NullString
	err := row.Scan(&cat.ID, &cat.UserID, &cat.Name, &parentID, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	if parentID.Valid {
		cat.ParentID = &parentID.String
	}
	return &cat, nil
}

func scanCategoryRow(rows *sql.Rows) (*model.Category, error) {
	var cat model.Category
	var parentID sql.NullString
	if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &parentID, &cat.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	if parentID.Valid {
		cat.ParentID = &parentID.String
	}
	return &cat, nil
}
