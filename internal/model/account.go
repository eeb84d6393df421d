package model

import "time"

// AccountType enumerates the supported kinds of accounts.
type AccountType string

const (
	// AccountTypeBank is a bank account.
	AccountTypeBank AccountType = "Bank"
	// AccountTypeMobileMoney is a mobile money wallet.
	AccountTypeMobileMoney AccountType = "Mobile Money"
	// AccountTypeCash is physical cash, the default.
	AccountTypeCash AccountType = "Cash"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBank, AccountTypeMobileMoney, AccountTypeCash:
		return true
	}
	return false
}

// DefaultCurrency is the 3-letter code assigned when none is supplied.
const DefaultCurrency = "RWF"

// Account holds money for exactly one user. Balance is authoritative
// mutable state: it equals the signed sum of the account's live
// transactions and is maintained incrementally by the transaction
// processor, never recomputed.
type Account struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	UserID    string
	Name      string
	Type      AccountType
	Currency  string
	Balance   Cents
}

// AccountUpdate carries the fields of a partial account update. Nil fields
// are left untouched.
type AccountUpdate struct {
	Name     *string
	Type     *AccountType
	Balance  *Cents
	Currency *string
}
