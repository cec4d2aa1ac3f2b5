package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/repository"
)

// TaskService defines the task lifecycle operations.
type TaskService interface {
	// List returns all of the owner's tasks with category and tag info.
	List(ctx context.Context, ownerID int64) ([]model.Task, error)
	// ListByStatus filters the owner's tasks by status.
	ListByStatus(ctx context.Context, ownerID int64, status string) ([]model.Task, error)
	// ListByCategory filters the owner's tasks by category.
	ListByCategory(ctx context.Context, ownerID, categoryID int64) ([]model.Task, error)
	// GetOne returns one owned task.
	GetOne(ctx context.Context, id, ownerID int64) (*model.Task, error)
	// Create validates and inserts a task, returning its id.
	Create(ctx context.Context, t model.NewTask) (int64, error)
	// Update replaces the mutable fields of an owned task.
	Update(ctx context.Context, id int64, u model.TaskUpdate, ownerID int64) error
	// SetStatus transitions the task state; completion is logged.
	SetStatus(ctx context.Context, id int64, status string, ownerID int64) error
	// Delete removes an owned task and logs the deletion.
	Delete(ctx context.Context, id, ownerID int64) error
	// AttachTag links an owned tag to an owned task, idempotently.
	AttachTag(ctx context.Context, taskID, tagID, ownerID int64) error
	// DetachTag removes the link if present.
	DetachTag(ctx context.Context, taskID, tagID, ownerID int64) error
	// Statistics computes the owner's task aggregate.
	Statistics(ctx context.Context, ownerID int64) (model.Statistics, error)
}

type TaskServiceImpl struct {
	tasks    repository.TaskRepository
	activity repository.ActivityRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(tasks repository.TaskRepository, activity repository.ActivityRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, activity: activity}
}

// List returns all of the owner's tasks, newest first.
func (s *TaskServiceImpl) List(ctx context.Context, ownerID int64) ([]model.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// ListByStatus validates the status value before filtering.
func (s *TaskServiceImpl) ListByStatus(ctx context.Context, ownerID int64, status string) ([]model.Task, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: estado inválido", errs.ErrValidation)
	}
	return s.tasks.ListByStatus(ctx, ownerID, status)
}

// ListByCategory filters the owner's tasks by category id.
func (s *TaskServiceImpl) ListByCategory(ctx context.Context, ownerID, categoryID int64) ([]model.Task, error) {
	return s.tasks.ListByCategory(ctx, ownerID, categoryID)
}

// GetOne returns one owned task.
func (s *TaskServiceImpl) GetOne(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	return s.tasks.GetOne(ctx, id, ownerID)
}

// Create validates the new task, defaults the priority to media, inserts it
// and logs the creation. The category reference is not checked on purpose.
func (s *TaskServiceImpl) Create(ctx context.Context, t model.NewTask) (int64, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return 0, fmt.Errorf("%w: el título es requerido", errs.ErrValidation)
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(t.Priority) {
		return 0, fmt.Errorf("%w: prioridad inválida", errs.ErrValidation)
	}

	id, err := s.tasks.Create(ctx, t)
	if err != nil {
		return 0, err
	}
	detail := "Tarea creada: " + t.Title
	_ = s.activity.Record(ctx, t.OwnerID, model.ActivityTaskCreated, &detail)
	return id, nil
}

// Update replaces the mutable fields of an owned task.
func (s *TaskServiceImpl) Update(ctx context.Context, id int64, u model.TaskUpdate, ownerID int64) error {
	u.Title = strings.TrimSpace(u.Title)
	if u.Title == "" {
		return fmt.Errorf("%w: el título es requerido", errs.ErrValidation)
	}
	if !model.ValidPriority(u.Priority) {
		return fmt.Errorf("%w: prioridad inválida", errs.ErrValidation)
	}
	if !model.ValidStatus(u.Status) {
		return fmt.Errorf("%w: estado inválido", errs.ErrValidation)
	}
	return s.tasks.Update(ctx, id, u, ownerID)
}

// SetStatus transitions the task state. All transitions between the three
// states are permitted; completing a task is recorded in the activity log.
func (s *TaskServiceImpl) SetStatus(ctx context.Context, id int64, status string, ownerID int64) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: estado inválido", errs.ErrValidation)
	}
	if err := s.tasks.SetStatus(ctx, id, status, ownerID); err != nil {
		return err
	}
	if status == model.StatusCompleted {
		detail := fmt.Sprintf("Tarea completada: ID %d", id)
		_ = s.activity.Record(ctx, ownerID, model.ActivityTaskCompleted, &detail)
	}
	return nil
}

// Delete removes an owned task and logs the deletion.
func (s *TaskServiceImpl) Delete(ctx context.Context, id, ownerID int64) error {
	if err := s.tasks.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	detail := fmt.Sprintf("Tarea eliminada: ID %d", id)
	_ = s.activity.Record(ctx, ownerID, model.ActivityTaskDeleted, &detail)
	return nil
}

// AttachTag links a tag to a task after confirming the task belongs to the
// caller; the link itself is idempotent.
func (s *TaskServiceImpl) AttachTag(ctx context.Context, taskID, tagID, ownerID int64) error {
	if _, err := s.tasks.GetOne(ctx, taskID, ownerID); err != nil {
		return err
	}
	return s.tasks.AttachTag(ctx, taskID, tagID)
}

// DetachTag removes the link if present.
func (s *TaskServiceImpl) DetachTag(ctx context.Context, taskID, tagID, ownerID int64) error {
	if _, err := s.tasks.GetOne(ctx, taskID, ownerID); err != nil {
		return err
	}
	return s.tasks.DetachTag(ctx, taskID, tagID)
}

// Statistics computes the owner's task aggregate.
func (s *TaskServiceImpl) Statistics(ctx context.Context, ownerID int64) (model.Statistics, error) {
	return s.tasks.Statistics(ctx, ownerID)
}
