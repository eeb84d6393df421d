// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Every engine operation reports one of these, wrapped
// with enough detail (entity kind, id, requesting user) to render a
// precise message. Callers classify with errors.Is.
var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the entity exists but the caller is not its owner.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a duplicate name under the same owner.
	ErrConflict = errors.New("duplicate entry")
	// ErrValidation indicates malformed input rejected at the boundary.
	ErrValidation = errors.New("invalid input")

	// ErrRenderFailed indicates the document rendering collaborator failed.
	ErrRenderFailed = errors.New("report rendering failed")
)

// NotFoundError reports a lookup of an entity that does not exist.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// ForbiddenError reports an access to an entity owned by a different user.
func ForbiddenError(entity, id, userID string) error {
	return fmt.Errorf("%w: user %s is not the owner of %s %s", ErrForbidden, userID, entity, id)
}

// ConflictError reports a duplicate name for an entity under the same owner.
func ConflictError(entity, name string) error {
	return fmt.Errorf("%w: %s with name %q already exists", ErrConflict, entity, name)
}

// ValidationError reports malformed input for a named field.
func ValidationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
