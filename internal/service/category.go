package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/repository"
)

// CategoryService defines owner-scoped category operations.
type CategoryService interface {
	// List returns the owner's categories with task counts.
	List(ctx context.Context, ownerID int64) ([]model.Category, error)
	// GetOne returns one owned category.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Category, error)
	// Create validates and inserts a category, returning its id.
	Create(ctx context.Context, name, color string, icon *string, ownerID int64) (int64, error)
	// Update replaces name, color and icon of an owned category.
	Update(ctx context.Context, id int64, name, color string, icon *string, ownerID int64) error
	// Delete removes an owned category.
	Delete(ctx context.Context, id, ownerID int64) error
}

type CategoryServiceImpl struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs CategoryService.
func NewCategoryService(categories repository.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{categories: categories}
}

// List returns the owner's categories with task counts, newest first.
func (s *CategoryServiceImpl) List(ctx context.Context, ownerID int64) ([]model.Category, error) {
	return s.categories.ListByOwner(ctx, ownerID)
}

// GetOne returns one owned category.
func (s *CategoryServiceImpl) GetOne(ctx context.Context, id, ownerID int64) (*model.Category, error) {
	return s.categories.GetOne(ctx, id, ownerID)
}

// Create validates the name and inserts the category. Duplicate names for
// the same owner are rejected by the unique constraint.
func (s *CategoryServiceImpl) Create(ctx context.Context, name, color string, icon *string, ownerID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	return s.categories.Create(ctx, name, color, icon, ownerID)
}

// Update replaces name, color and icon of an owned category.
func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, name, color string, icon *string, ownerID int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	return s.categories.Update(ctx, id, name, color, icon, ownerID)
}

// Delete removes an owned category. Tasks referencing it keep their
// (now dangling) category id.
func (s *CategoryServiceImpl) Delete(ctx context.Context, id, ownerID int64) error {
	return s.categories.Delete(ctx, id, ownerID)
}
