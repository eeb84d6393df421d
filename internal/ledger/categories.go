package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/common"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/model"
	"github.com/JulesNIYOMWUNGERI/Taskforce-wallet-be/internal/service"
)

// CategoryTree owns category creation, parent/child linkage, and lookup.
// Only single-level nesting is created through this service; a parent must
// already exist (and belong to the caller) before it can be linked.
type CategoryTree struct {
	store service.Storage
}

// NewCategoryTree creates a CategoryTree backed by the given store.
func NewCategoryTree(store service.Storage) *CategoryTree {
	return &CategoryTree{store: store}
}

// CreateCategory creates a category for the user, optionally nested under
// an existing parent. The name must be unique among the user's categories.
func (t *CategoryTree) CreateCategory(ctx context.Context, userID, name string, parentID *string) (*model.Category, error) {
	if name == "" {
		return nil, common.ValidationError("name", "cannot be empty")
	}

	user, err := t.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundError("user", userID)
	}

	existing, err := t.store.GetCategoryByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.ConflictError("category", name)
	}

	if parentID != nil {
		if _, err := t.resolveParent(ctx, userID, *parentID); err != nil {
			return nil, err
		}
	}

	category := &model.Category{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		ParentID: parentID,
	}

	if err := t.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory returns the user's category with parent and direct
// subcategories populated, failing NotFound unless it exists and is owned
// by the user.
func (t *CategoryTree) GetCategory(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	category, err := t.store.GetCategoryForUser(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.NotFoundError("category", categoryID)
	}
	return category, nil
}

// ListCategories returns all categories owned by the user, each with
// parent and subcategories populated.
func (t *CategoryTree) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	user, err := t.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NotFoundError("user", userID)
	}

	return t.store.ListCategories(ctx, userID)
}

// UpdateCategory replaces the name when a non-empty one is supplied and
// re-links the parent when a parent id is supplied. Existence and
// ownership checks match UpdateAccount.
func (t *CategoryTree) UpdateCategory(ctx context.Context, userID, categoryID, name string, parentID *string) (*model.Category, error) {
	category, err := t.resolveOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if _, err := t.resolveParent(ctx, userID, *parentID); err != nil {
			return nil, err
		}
		category.ParentID = parentID
	}
	if name != "" {
		category.Name = name
	}

	if err := t.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes the category after existence and ownership
// checks. Subcategories and every transaction referencing the removed
// categories go with it; the store reverses the cascaded transactions'
// balance contributions in the same atomic unit.
func (t *CategoryTree) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := t.resolveOwned(ctx, userID, categoryID); err != nil {
		return err
	}
	return t.store.DeleteCategory(ctx, categoryID)
}

func (t *CategoryTree) resolveOwned(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	category, err := t.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.NotFoundError("category", categoryID)
	}
	if category.UserID != userID {
		return nil, common.ForbiddenError("category", categoryID, userID)
	}
	return category, nil
}

// resolveParent looks up a prospective parent scoped to the owner. Another
// user's category is indistinguishable from an absent one here.
func (t *CategoryTree) resolveParent(ctx context.Context, userID, parentID string) (*model.Category, error) {
	parent, err := t.store.GetCategoryForUser(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, common.NotFoundError("parent category", parentID)
	}
	return parent, nil
}
