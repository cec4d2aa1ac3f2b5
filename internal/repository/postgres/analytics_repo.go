package postgres

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// AnalyticsRepo implements AnalyticsRepository using PostgreSQL.
// All queries are read-only and owner-scoped.
type AnalyticsRepo struct{ db *DB }

// NewAnalyticsRepo constructs an analytics repository.
func NewAnalyticsRepo(db *DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// TasksByCategory counts tasks per category. The left join keeps
// zero-task categories in the result.
func (r *AnalyticsRepo) TasksByCategory(ctx context.Context, ownerID int64) ([]model.CategoryCount, error) {
	const q = `
SELECT c.nombre, c.color, COUNT(t.id)
FROM categorias c
LEFT JOIN tareas t ON c.id = t.categoria_id
WHERE c.usuario_id = $1
GROUP BY c.id, c.nombre, c.color
ORDER BY COUNT(t.id) DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Color, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TasksByStatus counts the owner's tasks grouped by status.
func (r *AnalyticsRepo) TasksByStatus(ctx context.Context, ownerID int64) ([]model.StatusCount, error) {
	const q = `SELECT estado, COUNT(*) FROM tareas WHERE usuario_id=$1 GROUP BY estado`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StatusCount
	for rows.Next() {
		var s model.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TasksByPriority counts the owner's tasks grouped by priority.
func (r *AnalyticsRepo) TasksByPriority(ctx context.Context, ownerID int64) ([]model.PriorityCount, error) {
	const q = `SELECT prioridad, COUNT(*) FROM tareas WHERE usuario_id=$1 GROUP BY prioridad`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PriorityCount
	for rows.Next() {
		var p model.PriorityCount
		if err := rows.Scan(&p.Priority, &p.Count); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// WeeklyCompletions returns daily completion counts for the trailing 7 days.
func (r *AnalyticsRepo) WeeklyCompletions(ctx context.Context, ownerID int64) ([]model.DailyCompletion, error) {
	const q = `
SELECT DATE(fecha_completada), COUNT(*)
FROM tareas
WHERE usuario_id = $1
  AND estado = 'completada'
  AND fecha_completada >= CURRENT_DATE - INTERVAL '7 days'
GROUP BY DATE(fecha_completada)
ORDER BY DATE(fecha_completada) ASC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DailyCompletion
	for rows.Next() {
		var d model.DailyCompletion
		if err := rows.Scan(&d.Date, &d.Completed); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Upcoming returns non-completed tasks with a due date within the next
// 7 days, soonest first.
func (r *AnalyticsRepo) Upcoming(ctx context.Context, ownerID int64) ([]model.Task, error) {
	const q = `
SELECT t.id, t.titulo, t.descripcion, t.fecha_limite, t.prioridad, t.estado,
       t.usuario_id, t.categoria_id, t.fecha_creacion, t.fecha_completada,
       c.nombre, c.color
FROM tareas t
LEFT JOIN categorias c ON t.categoria_id = c.id
WHERE t.usuario_id = $1
  AND t.estado <> 'completada'
  AND t.fecha_limite IS NOT NULL
  AND t.fecha_limite BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'
ORDER BY t.fecha_limite ASC`
	return r.queryJoinedTasks(ctx, q, ownerID)
}

// RecentTasks returns the owner's newest tasks with category info.
func (r *AnalyticsRepo) RecentTasks(ctx context.Context, ownerID int64, limit int) ([]model.Task, error) {
	const q = `
SELECT t.id, t.titulo, t.descripcion, t.fecha_limite, t.prioridad, t.estado,
       t.usuario_id, t.categoria_id, t.fecha_creacion, t.fecha_completada,
       c.nombre, c.color
FROM tareas t
LEFT JOIN categorias c ON t.categoria_id = c.id
WHERE t.usuario_id = $1
ORDER BY t.fecha_creacion DESC
LIMIT $2`
	return r.queryJoinedTasks(ctx, q, ownerID, limit)
}

func (r *AnalyticsRepo) queryJoinedTasks(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var t model.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Status,
			&t.OwnerID, &t.CategoryID, &t.CreatedAt, &t.CompletedAt,
			&t.CategoryName, &t.CategoryColor)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
