package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// CategoryRepository provides owner-scoped category storage.
type CategoryRepository interface {
	// ListByOwner returns the owner's categories with live task counts, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Category, error)
	// GetOne returns a category if it exists and belongs to ownerID.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Category, error)
	// Create inserts a category and returns its id.
	Create(ctx context.Context, name, color string, icon *string, ownerID int64) (int64, error)
	// Update replaces name, color and icon; ErrNotFound when no owned row matches.
	Update(ctx context.Context, id int64, name, color string, icon *string, ownerID int64) error
	// Delete removes the category; ErrNotFound when no owned row matches.
	Delete(ctx context.Context, id, ownerID int64) error
}
