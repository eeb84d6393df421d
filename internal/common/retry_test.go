package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return nil
		}, RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failure", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return errors.New("persistent")
		}, RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 2, calls)
	})

	t.Run("non-retryable error stops immediately", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: errors.New("fatal"), Retryable: false}
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := WithRetry(cancelled, func() error {
			return errors.New("always")
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Minute})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("constructors wrap their sentinels", func(t *testing.T) {
		assert.ErrorIs(t, NotFoundError("account", "abc"), ErrNotFound)
		assert.ErrorIs(t, ForbiddenError("account", "abc", "u1"), ErrForbidden)
		assert.ErrorIs(t, ConflictError("category", "Food"), ErrConflict)
		assert.ErrorIs(t, ValidationError("amount", "must be positive"), ErrValidation)
	})

	t.Run("messages carry the detail", func(t *testing.T) {
		assert.Contains(t, NotFoundError("account", "abc").Error(), "account abc")
		assert.Contains(t, ConflictError("category", "Food").Error(), `"Food"`)
	})
}
