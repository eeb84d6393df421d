// Package model defines the domain types persisted and manipulated by the
// wallet engine.
package model

import "time"

// User owns accounts, categories, and transactions. Credential handling
// lives with the identity collaborator; the engine only ever sees a
// verified user id.
type User struct {
	CreatedAt   time.Time
	ID          string
	FullName    string
	Email       string
	BudgetLimit Cents
}
