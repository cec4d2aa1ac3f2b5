package postgres

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
)

// CategoryRepo implements CategoryRepository using PostgreSQL.
type CategoryRepo struct{ db *DB }

// NewCategoryRepo constructs a category repository.
func NewCategoryRepo(db *DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListByOwner returns the owner's categories with live task counts, newest first.
func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Category, error) {
	const q = `
SELECT c.id, c.nombre, c.color, c.icono, c.usuario_id, c.fecha_creacion, COUNT(t.id)
FROM categorias c
LEFT JOIN tareas t ON c.id = t.categoria_id
WHERE c.usuario_id = $1
GROUP BY c.id
ORDER BY c.fecha_creacion DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.OwnerID, &c.CreatedAt, &c.TaskCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetOne returns a category owned by ownerID, or ErrNotFound.
func (r *CategoryRepo) GetOne(ctx context.Context, id, ownerID int64) (*model.Category, error) {
	const q = `
SELECT id, nombre, color, icono, usuario_id, fecha_creacion
FROM categorias WHERE id=$1 AND usuario_id=$2`
	var c model.Category
	err := r.db.Pool.QueryRow(ctx, q, id, ownerID).
		Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.OwnerID, &c.CreatedAt)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &c, nil
}

// Create inserts a category; a duplicate (nombre, usuario_id) pair is rejected.
func (r *CategoryRepo) Create(ctx context.Context, name, color string, icon *string, ownerID int64) (int64, error) {
	const q = `
INSERT INTO categorias (nombre, color, icono, usuario_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, name, color, icon, ownerID).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	return id, err
}

// Update replaces name, color and icon for an owned category.
func (r *CategoryRepo) Update(ctx context.Context, id int64, name, color string, icon *string, ownerID int64) error {
	const q = `UPDATE categorias SET nombre=$1, color=$2, icono=$3 WHERE id=$4 AND usuario_id=$5`
	tag, err := r.db.Pool.Exec(ctx, q, name, color, icon, id, ownerID)
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

// Delete removes an owned category. Referencing tasks keep their category id.
func (r *CategoryRepo) Delete(ctx context.Context, id, ownerID int64) error {
	const q = `DELETE FROM categorias WHERE id=$1 AND usuario_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
