// Package testutil provides test helpers for building in-memory wallet
// databases with seeded users.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/storage"
)

// TestDB wraps an in-memory storage instance with helpers for seeding.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database with migrations
// applied. Cleanup is registered automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedUser creates a user with the given budget limit and returns it.
func (db *TestDB) SeedUser(name, email string, budgetLimit model.Cents) *model.User {
	db.t.Helper()

	user := &model.User{
		ID:          uuid.NewString(),
		FullName:    name,
		Email:       email,
		BudgetLimit: budgetLimit,
	}

	if err := db.Storage.CreateUser(context.Background(), user); err != nil {
		db.t.Fatalf("failed to seed user %q: %v", email, err)
	}

	return user
}

// SeedAccount creates an account for the user and returns it.
func (db *TestDB) SeedAccount(userID, name string, balance model.Cents) *model.Account {
	db.t.Helper()

	account := &model.Account{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Type:     model.AccountTypeCash,
		Balance:  balance,
		Currency: model.DefaultCurrency,
	}

	if err := db.Storage.CreateAccount(context.Background(), account); err != nil {
		db.t.Fatalf("failed to seed account %q: %v", name, err)
	}

	return account
}

// SeedCategory creates a category for the user and returns it.
func (db *TestDB) SeedCategory(userID, name string, parentID *string) *model.Category {
	db.t.Helper()

	category := &model.Category{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}

	if err := db.Storage.CreateCategory(context.Background(), category); err != nil {
		db.t.Fatalf("failed to seed category %q: %v", name, err)
	}

	return category
}
