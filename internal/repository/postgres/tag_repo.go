package postgres

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
)

// TagRepo implements TagRepository using PostgreSQL.
type TagRepo struct{ db *DB }

// NewTagRepo constructs a tag repository.
func NewTagRepo(db *DB) *TagRepo { return &TagRepo{db: db} }

// ListByOwner returns the owner's tags, newest first.
func (r *TagRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Tag, error) {
	const q = `
SELECT id, nombre, color, usuario_id, fecha_creacion
FROM etiquetas WHERE usuario_id=$1
ORDER BY fecha_creacion DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetOne returns a tag owned by ownerID, or ErrNotFound.
func (r *TagRepo) GetOne(ctx context.Context, id, ownerID int64) (*model.Tag, error) {
	const q = `
SELECT id, nombre, color, usuario_id, fecha_creacion
FROM etiquetas WHERE id=$1 AND usuario_id=$2`
	var t model.Tag
	err := r.db.Pool.QueryRow(ctx, q, id, ownerID).
		Scan(&t.ID, &t.Name, &t.Color, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &t, nil
}

// Create inserts a tag; a duplicate (nombre, usuario_id) pair is rejected.
func (r *TagRepo) Create(ctx context.Context, name, color string, ownerID int64) (int64, error) {
	const q = `
INSERT INTO etiquetas (nombre, color, usuario_id)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, name, color, ownerID).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	return id, err
}

// Update replaces name and color for an owned tag.
func (r *TagRepo) Update(ctx context.Context, id int64, name, color string, ownerID int64) error {
	const q = `UPDATE etiquetas SET nombre=$1, color=$2 WHERE id=$3 AND usuario_id=$4`
	tag, err := r.db.Pool.Exec(ctx, q, name, color, id, ownerID)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned tag.
func (r *TagRepo) Delete(ctx context.Context, id, ownerID int64) error {
	const q = `DELETE FROM etiquetas WHERE id=$1 AND usuario_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByTask returns the tags attached to a task via the join table.
func (r *TagRepo) ListByTask(ctx context.Context, taskID int64) ([]model.Tag, error) {
	const q = `
SELECT e.id, e.nombre, e.color, e.usuario_id, e.fecha_creacion
FROM etiquetas e
INNER JOIN tareas_etiquetas te ON e.id = te.etiqueta_id
WHERE te.tarea_id = $1`
	rows, err := r.db.Pool.Query(ctx, q, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
