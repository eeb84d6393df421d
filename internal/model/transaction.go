package model

import "time"

// TransactionType signs a transaction: income adds to the account balance,
// expense subtracts.
type TransactionType string

const (
	// TypeIncome adds the amount to the account balance.
	TypeIncome TransactionType = "income"
	// TypeExpense subtracts the amount from the account balance.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction records a single signed movement of money on an account.
// Account and category are immutable once set; amount, type, description,
// and date may change, with the account balance re-derived atomically.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CategoryID  *string
	Account     *Account
	Category    *Category
	ID          string
	UserID      string
	AccountID   string
	Description string
	Type        TransactionType
	Amount      Cents
}

// Delta returns the transaction's signed contribution to its account
// balance.
func (t *Transaction) Delta() Cents {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// TransactionUpdate carries the fields of a partial transaction update.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Amount      *Cents
	Type        *TransactionType
	Description *string
	Date        *time.Time
}
