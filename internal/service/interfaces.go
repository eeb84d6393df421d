// Package service defines the interfaces between the wallet engine and its
// collaborators: the persistence layer and the document renderer.
package service

import (
	"context"
	"time"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

// Storage defines the contract for the persistence layer.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetBudgetLimit(ctx context.Context, userID string, limit model.Cents) error

	// Account operations. GetAccount looks up by id alone so callers can
	// distinguish "does not exist" from "owned by someone else";
	// GetAccountForUser scopes to the owner.
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	GetAccountForUser(ctx context.Context, userID, id string) (*model.Account, error)
	GetAccountByName(ctx context.Context, userID, name string) (*model.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]model.Account, error)
	UpdateAccount(ctx context.Context, account *model.Account) error
	DeleteAccount(ctx context.Context, id string) error

	// Category operations. DeleteCategory removes the category, its
	// subcategories, and their transactions, reversing every removed
	// transaction's balance contribution in one atomic unit.
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryForUser(ctx context.Context, userID, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
	ListCategories(ctx context.Context, userID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Transaction reads. Writes go through Tx so the balance adjustment and
	// the row mutation always land together.
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionForUser(ctx context.Context, userID, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	GetExpenseTotal(ctx context.Context, userID string) (model.Cents, error)
	GetReportRows(ctx context.Context, userID string, start, end *time.Time) ([]model.ReportRow, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is the atomic unit around an account mutation and its transaction row.
// Either everything inside commits or nothing does; a fault mid-sequence
// can never leave the balance desynchronized from history.
type Tx interface {
	Commit() error
	Rollback() error

	GetAccount(ctx context.Context, id string) (*model.Account, error)
	AdjustAccountBalance(ctx context.Context, accountID string, delta model.Cents) error
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// Renderer turns a normalized report model into a document byte stream.
// The production implementation is the external PDF collaborator; the
// engine only depends on this contract.
type Renderer interface {
	Render(ctx context.Context, report *model.Report) ([]byte, error)
}
