// Package ledger implements the wallet engine: accounts, categories,
// transaction processing with balance maintenance, and budget monitoring.
// Every operation takes the caller's verified user id explicitly; there is
// no ambient identity.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/service"
)

// AccountLedger owns account creation, per-user name uniqueness, and the
// account balance as authoritative mutable state. Balance mutation driven
// by transactions lives in TransactionProcessor; this service only exposes
// the direct CRUD surface.
type AccountLedger struct {
	store service.Storage
}

// NewAccountLedger creates an AccountLedger backed by the given store.
func NewAccountLedger(store service.Storage) *AccountLedger {
	return &AccountLedger{store: store}
}

// CreateAccount creates an account for the user. The name must be unique
// among the user's accounts; a different user may reuse the same name.
// Empty type and currency fall back to Cash and the default currency.
func (l *AccountLedger) CreateAccount(ctx context.Context, userID, name string, accountType model.AccountType, initialBalance model.Cents, currency string) (*model.Account, error) {
	if name == "" {
		return nil, common.ValidationError("name", "cannot be empty")
	}
	if accountType == "" {
		accountType = model.AccountTypeCash
	}
	if !accountType.Valid() {
		return nil, common.ValidationError("type", "must be Bank, Mobile Money, or Cash")
	}
	if currency == "" {
		currency = model.DefaultCurrency
	}

	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundError("user", userID)
	}

	existing, err := l.store.GetAccountByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ConflictError("account", name)
	}

	account := &model.Account{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Type:     accountType,
		Balance:  initialBalance,
		Currency: currency,
	}

	if err := l.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount returns the user's account, failing NotFound unless an
// account matches both id and owner.
func (l *AccountLedger) GetAccount(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := l.store.GetAccountForUser(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, common.NotFoundError("account", accountID)
	}
	return account, nil
}

// ListAccounts returns all accounts owned by the user, failing NotFound
// when the user does not exist.
func (l *AccountLedger) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundError("user", userID)
	}

	return l.store.ListAccounts(ctx, userID)
}

// UpdateAccount merges the supplied fields into the account. It fails
// NotFound if the account does not exist at all, and Forbidden if it
// belongs to a different user. Overwriting the balance here bypasses the
// transaction-maintained invariant, so it is logged.
func (l *AccountLedger) UpdateAccount(ctx context.Context, userID, accountID string, update model.AccountUpdate) (*model.Account, error) {
	account, err := l.resolveOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, common.ValidationError("name", "cannot be empty")
		}
		account.Name = *update.Name
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, common.ValidationError("type", "must be Bank, Mobile Money, or Cash")
		}
		account.Type = *update.Type
	}
	if update.Balance != nil {
		slog.Warn("account balance overwritten directly, bypassing transaction history",
			"account_id", accountID,
			"old_balance", account.Balance.String(),
			"new_balance", update.Balance.String())
		account.Balance = *update.Balance
	}
	if update.Currency != nil {
		if len(*update.Currency) != 3 {
			return nil, common.ValidationError("currency", "must be a 3-letter code")
		}
		account.Currency = *update.Currency
	}

	if err := l.store.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes the account after the same existence and ownership
// checks as UpdateAccount. The persistence layer cascades the removal to
// the account's transactions.
func (l *AccountLedger) DeleteAccount(ctx context.Context, userID, accountID string) error {
	if _, err := l.resolveOwned(ctx, userID, accountID); err != nil {
		return err
	}
	return l.store.DeleteAccount(ctx, accountID)
}

// resolveOwned fetches the account by id alone, then distinguishes a
// missing account from one owned by another user.
func (l *AccountLedger) resolveOwned(ctx context.Context, userID, accountID string) (*model.Account, error) {
	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, common.NotFoundError("account", accountID)
	}
	if account.UserID != userID {
		return nil, common.ForbiddenError("account", accountID, userID)
	}
	return account, nil
}
