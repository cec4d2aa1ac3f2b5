package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
)

// TaskRepo implements TaskRepository using PostgreSQL.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

const taskCols = `id, titulo, descripcion, fecha_limite, prioridad, estado, usuario_id, categoria_id, fecha_creacion, fecha_completada`

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
		&t.OwnerID, &t.CategoryID, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]model.Task, error) {
	defer rows.Close()
	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ListByOwner returns all tasks with joined category name/color and a
// concatenated list of tag names, newest created first.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Task, error) {
	const q = `
SELECT t.id, t.titulo, t.descripcion, t.fecha_limite, t.prioridad, t.estado,
       t.usuario_id, t.categoria_id, t.fecha_creacion, t.fecha_completada,
       c.nombre, c.color,
       string_agg(DISTINCT e.nombre, ',')
FROM tareas t
LEFT JOIN categorias c ON t.categoria_id = c.id
LEFT JOIN tareas_etiquetas te ON t.id = te.tarea_id
LEFT JOIN etiquetas e ON te.etiqueta_id = e.id
WHERE t.usuario_id = $1
GROUP BY t.id, c.nombre, c.color
ORDER BY t.fecha_creacion DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
			&t.OwnerID, &t.CategoryID, &t.CreatedAt, &t.CompletedAt,
			&t.CategoryName, &t.CategoryColor, &t.TagNames)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByStatus filters the owner's tasks by status, newest first.
func (r *TaskRepo) ListByStatus(ctx context.Context, ownerID int64, status string) ([]model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tareas WHERE usuario_id=$1 AND estado=$2 ORDER BY fecha_creacion DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID, status)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListByCategory filters the owner's tasks by category, newest first.
func (r *TaskRepo) ListByCategory(ctx context.Context, ownerID, categoryID int64) ([]model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tareas WHERE usuario_id=$1 AND categoria_id=$2 ORDER BY fecha_creacion DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID, categoryID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// GetOne returns a task owned by ownerID, or ErrNotFound.
func (r *TaskRepo) GetOne(ctx context.Context, id, ownerID int64) (*model.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tareas WHERE id=$1 AND usuario_id=$2`
	return scanTask(r.db.Pool.QueryRow(ctx, q, id, ownerID))
}

// Create inserts a task. The category reference is stored as given; a
// nonexistent category id is accepted.
func (r *TaskRepo) Create(ctx context.Context, t model.NewTask) (int64, error) {
	const q = `
INSERT INTO tareas (titulo, descripcion, fecha_limite, prioridad, usuario_id, categoria_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q,
		t.Title, t.Description, t.DueDate, t.Priority, t.OwnerID, t.CategoryID).Scan(&id)
	return id, err
}

// Update is a full-row replace of the mutable task fields.
func (r *TaskRepo) Update(ctx context.Context, id int64, u model.TaskUpdate, ownerID int64) error {
	const q = `
UPDATE tareas
SET titulo=$1, descripcion=$2, fecha_limite=$3, prioridad=$4, estado=$5, categoria_id=$6
WHERE id=$7 AND usuario_id=$8`
	tag, err := r.db.Pool.Exec(ctx, q,
		u.Title, u.Description, u.DueDate, u.Priority, u.Status, u.CategoryID, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetStatus changes the task state. Entering completada stamps
// fecha_completada; any other state clears it.
func (r *TaskRepo) SetStatus(ctx context.Context, id int64, status string, ownerID int64) error {
	const q = `
UPDATE tareas
SET estado=$1,
    fecha_completada=CASE WHEN $1 = 'completada' THEN CURRENT_TIMESTAMP ELSE NULL END
WHERE id=$2 AND usuario_id=$3`
	tag, err := r.db.Pool.Exec(ctx, q, status, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned task; join-table rows go with it via cascade.
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID int64) error {
	const q = `DELETE FROM tareas WHERE id=$1 AND usuario_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// AttachTag links a tag to a task. Re-attaching an existing pair is a no-op.
func (r *TaskRepo) AttachTag(ctx context.Context, taskID, tagID int64) error {
	const q = `
INSERT INTO tareas_etiquetas (tarea_id, etiqueta_id)
VALUES ($1, $2)
ON CONFLICT (tarea_id, etiqueta_id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, taskID, tagID)
	return err
}

// DetachTag removes the link if present; a missing link is not an error.
func (r *TaskRepo) DetachTag(ctx context.Context, taskID, tagID int64) error {
	const q = `DELETE FROM tareas_etiquetas WHERE tarea_id=$1 AND etiqueta_id=$2`
	_, err := r.db.Pool.Exec(ctx, q, taskID, tagID)
	return err
}

// Statistics computes the single-row task aggregate for an owner. A task is
// overdue when its due date has passed and it is not completed.
func (r *TaskRepo) Statistics(ctx context.Context, ownerID int64) (model.Statistics, error) {
	const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE estado = 'completada'),
       COUNT(*) FILTER (WHERE estado = 'pendiente'),
       COUNT(*) FILTER (WHERE estado = 'en_progreso'),
       COUNT(*) FILTER (WHERE prioridad = 'alta'),
       COUNT(*) FILTER (WHERE fecha_limite < CURRENT_DATE AND estado <> 'completada')
FROM tareas
WHERE usuario_id = $1`
	var s model.Statistics
	err := r.db.Pool.QueryRow(ctx, q, ownerID).
		Scan(&s.Total, &s.Completed, &s.Pending, &s.InProgress, &s.HighPriority, &s.Overdue)
	return s, err
}
