package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/repository"
)

// TagService defines owner-scoped tag operations.
type TagService interface {
	// List returns the owner's tags.
	List(ctx context.Context, ownerID int64) ([]model.Tag, error)
	// GetOne returns one owned tag.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Tag, error)
	// Create validates and inserts a tag, returning its id.
	Create(ctx context.Context, name, color string, ownerID int64) (int64, error)
	// Update replaces name and color of an owned tag.
	Update(ctx context.Context, id int64, name, color string, ownerID int64) error
	// Delete removes an owned tag.
	Delete(ctx context.Context, id, ownerID int64) error
	// ListByTask returns the tags attached to one owned task.
	ListByTask(ctx context.Context, taskID, ownerID int64) ([]model.Tag, error)
}

type TagServiceImpl struct {
	tags  repository.TagRepository
	tasks repository.TaskRepository
}

// NewTagService constructs TagService.
func NewTagService(tags repository.TagRepository, tasks repository.TaskRepository) *TagServiceImpl {
	return &TagServiceImpl{tags: tags, tasks: tasks}
}

// List returns the owner's tags, newest first.
func (s *TagServiceImpl) List(ctx context.Context, ownerID int64) ([]model.Tag, error) {
	return s.tags.ListByOwner(ctx, ownerID)
}

// GetOne returns one owned tag.
func (s *TagServiceImpl) GetOne(ctx context.Context, id, ownerID int64) (*model.Tag, error) {
	return s.tags.GetOne(ctx, id, ownerID)
}

// Create validates the name and inserts the tag.
func (s *TagServiceImpl) Create(ctx context.Context, name, color string, ownerID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	return s.tags.Create(ctx, name, color, ownerID)
}

// Update replaces name and color of an owned tag.
func (s *TagServiceImpl) Update(ctx context.Context, id int64, name, color string, ownerID int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	return s.tags.Update(ctx, id, name, color, ownerID)
}

// Delete removes an owned tag; join-table rows cascade away.
func (s *TagServiceImpl) Delete(ctx context.Context, id, ownerID int64) error {
	return s.tags.Delete(ctx, id, ownerID)
}

// ListByTask returns the tags attached to a task after the ownership check
// on the task itself.
func (s *TagServiceImpl) ListByTask(ctx context.Context, taskID, ownerID int64) ([]model.Tag, error) {
	if _, err := s.tasks.GetOne(ctx, taskID, ownerID); err != nil {
		return nil, err
	}
	return s.tags.ListByTask(ctx, taskID)
}
