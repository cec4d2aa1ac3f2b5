package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
)

type fakeTasks struct {
	nextID int64
	byID   map[int64]*model.Task
	links  map[[2]int64]bool
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{nextID: 1, byID: map[int64]*model.Task{}, links: map[[2]int64]bool{}}
}

func (f *fakeTasks) ListByOwner(_ context.Context, ownerID int64) ([]model.Task, error) {
	var out []model.Task
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListByStatus(_ context.Context, ownerID int64, status string) ([]model.Task, error) {
	var out []model.Task
	for _, t := range f.byID {
		if t.OwnerID == ownerID && t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListByCategory(_ context.Context, ownerID, categoryID int64) ([]model.Task, error) {
	var out []model.Task
	for _, t := range f.byID {
		if t.OwnerID == ownerID && t.CategoryID != nil && *t.CategoryID == categoryID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTasks) GetOne(_ context.Context, id, ownerID int64) (*model.Task, error) {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return t, nil
}

func (f *fakeTasks) Create(_ context.Context, n model.NewTask) (int64, error) {
	t := &model.Task{
		ID: f.nextID, Title: n.Title, Description: n.Description, DueDate: n.DueDate,
		Priority: n.Priority, Status: model.StatusPending, OwnerID: n.OwnerID,
		CategoryID: n.CategoryID, CreatedAt: time.Now(),
	}
	f.nextID++
	f.byID[t.ID] = t
	return t.ID, nil
}

func (f *fakeTasks) Update(_ context.Context, id int64, u model.TaskUpdate, ownerID int64) error {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	t.Title, t.Description, t.DueDate = u.Title, u.Description, u.DueDate
	t.Priority, t.Status, t.CategoryID = u.Priority, u.Status, u.CategoryID
	return nil
}

func (f *fakeTasks) SetStatus(_ context.Context, id int64, status string, ownerID int64) error {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	t.Status = status
	if status == model.StatusCompleted {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id, ownerID int64) error {
	t, ok := f.byID[id]
	if !ok || t.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTasks) AttachTag(_ context.Context, taskID, tagID int64) error {
	f.links[[2]int64{taskID, tagID}] = true
	return nil
}

func (f *fakeTasks) DetachTag(_ context.Context, taskID, tagID int64) error {
	delete(f.links, [2]int64{taskID, tagID})
	return nil
}

func (f *fakeTasks) Statistics(_ context.Context, ownerID int64) (model.Statistics, error) {
	var s model.Statistics
	for _, t := range f.byID {
		if t.OwnerID != ownerID {
			continue
		}
		s.Total++
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusPending:
			s.Pending++
		case model.StatusInProgress:
			s.InProgress++
		}
	}
	return s, nil
}

func TestTaskService_Create_DefaultsPriority(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTasks()
	act := &fakeActivity{}
	s := NewTaskService(tasks, act)

	id, err := s.Create(ctx, model.NewTask{Title: "  Comprar leche  ", OwnerID: 1})
	require.NoError(t, err)

	got, err := tasks.GetOne(ctx, id, 1)
	require.NoError(t, err)
	require.Equal(t, "Comprar leche", got.Title)
	require.Equal(t, model.PriorityMedium, got.Priority)
	require.Equal(t, model.StatusPending, got.Status)
	require.Contains(t, act.details, "Tarea creada: Comprar leche")
}

func TestTaskService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewTaskService(newFakeTasks(), &fakeActivity{})

	_, err := s.Create(ctx, model.NewTask{Title: "   ", OwnerID: 1})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = s.Create(ctx, model.NewTask{Title: "T", Priority: "urgente", OwnerID: 1})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestTaskService_SetStatus(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTasks()
	act := &fakeActivity{}
	s := NewTaskService(tasks, act)

	id, err := s.Create(ctx, model.NewTask{Title: "T", OwnerID: 1})
	require.NoError(t, err)

	require.ErrorIs(t, s.SetStatus(ctx, id, "hecha", 1), errs.ErrValidation)
	require.ErrorIs(t, s.SetStatus(ctx, id, model.StatusCompleted, 2), errs.ErrNotFound)

	require.NoError(t, s.SetStatus(ctx, id, model.StatusCompleted, 1))
	got, _ := tasks.GetOne(ctx, id, 1)
	require.NotNil(t, got.CompletedAt)
	require.Contains(t, act.kinds, model.ActivityTaskCompleted)

	// Leaving the completed state clears the stamp and is not re-logged.
	logged := len(act.kinds)
	require.NoError(t, s.SetStatus(ctx, id, model.StatusInProgress, 1))
	got, _ = tasks.GetOne(ctx, id, 1)
	require.Nil(t, got.CompletedAt)
	require.Len(t, act.kinds, logged)
}

func TestTaskService_Update_Validation(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTasks()
	s := NewTaskService(tasks, &fakeActivity{})

	id, err := s.Create(ctx, model.NewTask{Title: "T", OwnerID: 1})
	require.NoError(t, err)

	err = s.Update(ctx, id, model.TaskUpdate{Title: "", Priority: "media", Status: "pendiente"}, 1)
	require.ErrorIs(t, err, errs.ErrValidation)
	err = s.Update(ctx, id, model.TaskUpdate{Title: "T", Priority: "x", Status: "pendiente"}, 1)
	require.ErrorIs(t, err, errs.ErrValidation)
	err = s.Update(ctx, id, model.TaskUpdate{Title: "T", Priority: "media", Status: "x"}, 1)
	require.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, s.Update(ctx, id, model.TaskUpdate{Title: "T2", Priority: "alta", Status: "en_progreso"}, 1))
	got, _ := tasks.GetOne(ctx, id, 1)
	require.Equal(t, "T2", got.Title)
	require.Equal(t, model.PriorityHigh, got.Priority)
}

func TestTaskService_Delete_Logs(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTasks()
	act := &fakeActivity{}
	s := NewTaskService(tasks, act)

	id, err := s.Create(ctx, model.NewTask{Title: "T", OwnerID: 1})
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(ctx, id, 2), errs.ErrNotFound)
	require.NoError(t, s.Delete(ctx, id, 1))
	require.Contains(t, act.kinds, model.ActivityTaskDeleted)
	_, err = tasks.GetOne(ctx, id, 1)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTaskService_AttachDetachTag_OwnershipChecked(t *testing.T) {
	ctx := context.Background()
	tasks := newFakeTasks()
	s := NewTaskService(tasks, &fakeActivity{})

	id, err := s.Create(ctx, model.NewTask{Title: "T", OwnerID: 1})
	require.NoError(t, err)

	require.ErrorIs(t, s.AttachTag(ctx, id, 8, 2), errs.ErrNotFound)
	require.NoError(t, s.AttachTag(ctx, id, 8, 1))
	require.NoError(t, s.AttachTag(ctx, id, 8, 1))
	require.True(t, tasks.links[[2]int64{id, 8}])

	require.ErrorIs(t, s.DetachTag(ctx, id, 8, 2), errs.ErrNotFound)
	require.NoError(t, s.DetachTag(ctx, id, 8, 1))
	require.False(t, tasks.links[[2]int64{id, 8}])
}

func TestTaskService_ListByStatus_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewTaskService(newFakeTasks(), &fakeActivity{})

	_, err := s.ListByStatus(ctx, 1, "terminada")
	require.ErrorIs(t, err, errs.ErrValidation)
}
