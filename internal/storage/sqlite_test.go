package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

// createTestStorage creates an in-memory database with migrations applied.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test storage: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func seedUser(t *testing.T, store *SQLiteStorage, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:       uuid.NewString(),
		FullName: "Test User",
		Email:    email,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedAccount(t *testing.T, store *SQLiteStorage, userID, name string, balance model.Cents) *model.Account {
	t.Helper()

	account := &model.Account{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Type:     model.AccountTypeCash,
		Balance:  balance,
		Currency: model.DefaultCurrency,
	}
	if err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return account
}

func seedCategory(t *testing.T, store *SQLiteStorage, userID, name string, parentID *string) *model.Category {
	t.Helper()

	category := &model.Category{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}
	if err := store.CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

// seedTransaction inserts a transaction row and applies its balance delta,
// mirroring what the transaction processor does.
func seedTransaction(t *testing.T, store *SQLiteStorage, userID, accountID string, categoryID *string, txType model.TransactionType, amount model.Cents, date time.Time) *model.Transaction {
	t.Helper()
	ctx := context.Background()

	txn := &model.Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       date,
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	if err := tx.AdjustAccountBalance(ctx, accountID, txn.Delta()); err != nil {
		_ = tx.Rollback()
		t.Fatalf("failed to adjust balance: %v", err)
	}
	if err := tx.CreateTransaction(ctx, txn); err != nil {
		_ = tx.Rollback()
		t.Fatalf("failed to create transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}
	return txn
}
