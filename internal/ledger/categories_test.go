package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	tree := NewCategoryTree(db.Storage)

	alice := db.SeedUser("Alice", "alice@example.com", 0)
	bob := db.SeedUser("Bob", "bob@example.com", 0)

	t.Run("root category", func(t *testing.T) {
		cat, err := tree.CreateCategory(ctx, alice.ID, "Food", nil)
		require.NoError(t, err)
		assert.Equal(t, "Food", cat.Name)
		assert.Nil(t, cat.ParentID)
	})

	t.Run("subcategory under own parent", func(t *testing.T) {
		parent, err := tree.CreateCategory(ctx, alice.ID, "Transport", nil)
		require.NoError(t, err)

		sub, err := tree.CreateCategory(ctx, alice.ID, "Fuel", &parent.ID)
		require.NoError(t, err)
		require.NotNil(t, sub.ParentID)
		assert.Equal(t, parent.ID, *sub.ParentID)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := tree.CreateCategory(ctx, alice.ID, "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("missing user not found", func(t *testing.T) {
		_, err := tree.CreateCategory(ctx, uuid.NewString(), "Food", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := tree.CreateCategory(ctx, alice.ID, "Food", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("missing parent not found", func(t *testing.T) {
		missing := uuid.NewString()
		_, err := tree.CreateCategory(ctx, alice.ID, "Orphan", &missing)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("another user's parent is invisible", func(t *testing.T) {
		alicesParent, err := tree.CreateCategory(ctx, alice.ID, "Home", nil)
		require.NoError(t, err)

		_, err = tree.CreateCategory(ctx, bob.ID, "Rent", &alicesParent.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	tree := NewCategoryTree(db.Storage)

	alice := db.SeedUser("Alice", "alice@example.com", 0)

	parent, err := tree.CreateCategory(ctx, alice.ID, "Leisure", nil)
	require.NoError(t, err)
	_, err = tree.CreateCategory(ctx, alice.ID, "Movies", &parent.ID)
	require.NoError(t, err)
	_, err = tree.CreateCategory(ctx, alice.ID, "Games", &parent.ID)
	require.NoError(t, err)

	t.Run("subcategories attached to parent", func(t *testing.T) {
		categories, err := tree.ListCategories(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, categories, 3)

		byName := make(map[string]int)
		for i := range categories {
			byName[categories[i].Name] = len(categories[i].Subcategories)
		}
		assert.Equal(t, 2, byName["Leisure"])
		assert.Equal(t, 0, byName["Movies"])
	})

	t.Run("missing user not found", func(t *testing.T) {
		_, err := tree.ListCategories(ctx, uuid.NewString())
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	tree := NewCategoryTree(db.Storage)

	alice := db.SeedUser("Alice", "alice@example.com", 0)
	bob := db.SeedUser("Bob", "bob@example.com", 0)

	t.Run("rename keeps parent", func(t *testing.T) {
		parent, err := tree.CreateCategory(ctx, alice.ID, "Bills", nil)
		require.NoError(t, err)
		sub, err := tree.CreateCategory(ctx, alice.ID, "Power", &parent.ID)
		require.NoError(t, err)

		got, err := tree.UpdateCategory(ctx, alice.ID, sub.ID, "Electricity", nil)
		require.NoError(t, err)
		assert.Equal(t, "Electricity", got.Name)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, parent.ID, *got.ParentID)
	})

	t.Run("reparent", func(t *testing.T) {
		newParent, err := tree.CreateCategory(ctx, alice.ID, "Utilities", nil)
		require.NoError(t, err)
		cat, err := tree.CreateCategory(ctx, alice.ID, "Water", nil)
		require.NoError(t, err)

		got, err := tree.UpdateCategory(ctx, alice.ID, cat.ID, "", &newParent.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water", got.Name)
		require.NotNil(t, got.ParentID)
		assert.Equal(t, newParent.ID, *got.ParentID)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		cat, err := tree.CreateCategory(ctx, alice.ID, "Private", nil)
		require.NoError(t, err)

		_, err = tree.UpdateCategory(ctx, bob.ID, cat.ID, "Stolen", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestDeleteCategoryTree(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	tree := NewCategoryTree(db.Storage)

	alice := db.SeedUser("Alice", "alice@example.com", 0)
	bob := db.SeedUser("Bob", "bob@example.com", 0)

	t.Run("subtree removed with parent", func(t *testing.T) {
		parent, err := tree.CreateCategory(ctx, alice.ID, "Food", nil)
		require.NoError(t, err)
		sub, err := tree.CreateCategory(ctx, alice.ID, "Snacks", &parent.ID)
		require.NoError(t, err)

		require.NoError(t, tree.DeleteCategory(ctx, alice.ID, parent.ID))

		_, err = tree.GetCategory(ctx, alice.ID, parent.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
		_, err = tree.GetCategory(ctx, alice.ID, sub.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		cat, err := tree.CreateCategory(ctx, alice.ID, "Guarded", nil)
		require.NoError(t, err)

		err = tree.DeleteCategory(ctx, bob.ID, cat.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing id not found", func(t *testing.T) {
		err := tree.DeleteCategory(ctx, alice.ID, uuid.NewString())
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
