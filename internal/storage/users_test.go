package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
)

func TestUserStorage(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	t.Run("create and get", func(t *testing.T) {
		user := seedUser(t, store, "alice@example.com")

		got, err := store.GetUser(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, model.Cents(0), got.BudgetLimit)
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := store.GetUser(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := &model.User{ID: uuid.NewString(), FullName: "Impostor", Email: "alice@example.com"}
		err := store.CreateUser(ctx, dup)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("set budget limit", func(t *testing.T) {
		user := seedUser(t, store, "bob@example.com")

		require.NoError(t, store.SetBudgetLimit(ctx, user.ID, 10000))

		got, err := store.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Cents(10000), got.BudgetLimit)
	})

	t.Run("list users", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(users), 2)
	})
}
