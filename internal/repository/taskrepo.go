package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// TaskRepository provides owner-scoped task storage and the task aggregate.
type TaskRepository interface {
	// ListByOwner returns all tasks with joined category name/color and
	// concatenated tag names, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error)
	// ListByStatus filters the owner's tasks by status, newest first.
	ListByStatus(ctx context.Context, ownerID int64, status string) ([]model.Task, error)
	// ListByCategory filters the owner's tasks by category, newest first.
	ListByCategory(ctx context.Context, ownerID, categoryID int64) ([]model.Task, error)
	// GetOne returns a task if it exists and belongs to ownerID.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Task, error)
	// Create inserts a task and returns its id. The category reference is
	// not checked for existence.
	Create(ctx context.Context, t model.NewTask) (int64, error)
	// Update is a full-row replace; ErrNotFound when no owned row matches.
	Update(ctx context.Context, id int64, u model.TaskUpdate, ownerID int64) error
	// SetStatus changes the state; entering completed stamps the completion
	// time, leaving it clears it. ErrNotFound when no owned row matches.
	SetStatus(ctx context.Context, id int64, status string, ownerID int64) error
	// Delete removes the task; ErrNotFound when no owned row matches.
	Delete(ctx context.Context, id, ownerID int64) error
	// AttachTag links a tag to a task; attaching twice is a no-op.
	AttachTag(ctx context.Context, taskID, tagID int64) error
	// DetachTag removes the link if present; absent links are not an error.
	DetachTag(ctx context.Context, taskID, tagID int64) error
	// Statistics computes the single-row aggregate for an owner.
	Statistics(ctx context.Context, ownerID int64) (model.Statistics, error)
}
