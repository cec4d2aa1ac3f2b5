package postgres

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// ActivityRepo implements ActivityRepository using PostgreSQL.
// Entries are append-only; there is no update or delete path.
type ActivityRepo struct{ db *DB }

// NewActivityRepo constructs an activity repository.
func NewActivityRepo(db *DB) *ActivityRepo { return &ActivityRepo{db: db} }

// Record appends one activity entry.
func (r *ActivityRepo) Record(ctx context.Context, ownerID int64, kind string, detail *string) error {
	const q = `INSERT INTO actividad_usuario (usuario_id, tipo_actividad, detalles) VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, ownerID, kind, detail)
	return err
}

// Recent returns the owner's newest entries, most recent first.
func (r *ActivityRepo) Recent(ctx context.Context, ownerID int64, limit int) ([]model.Activity, error) {
	const q = `
SELECT id, usuario_id, tipo_actividad, detalles, fecha_actividad
FROM actividad_usuario
WHERE usuario_id=$1
ORDER BY fecha_actividad DESC
LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Kind, &a.Detail, &a.At); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
