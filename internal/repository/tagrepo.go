package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// TagRepository provides owner-scoped tag storage.
type TagRepository interface {
	// ListByOwner returns the owner's tags, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Tag, error)
	// GetOne returns a tag if it exists and belongs to ownerID.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Tag, error)
	// Create inserts a tag and returns its id.
	Create(ctx context.Context, name, color string, ownerID int64) (int64, error)
	// Update replaces name and color; ErrNotFound when no owned row matches.
	Update(ctx context.Context, id int64, name, color string, ownerID int64) error
	// Delete removes the tag; ErrNotFound when no owned row matches.
	Delete(ctx context.Context, id, ownerID int64) error
	// ListByTask returns the tags attached to a task.
	ListByTask(ctx context.Context, taskID int64) ([]model.Tag, error)
}
