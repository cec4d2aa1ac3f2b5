package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, nombre, email, password, foto_perfil, fecha_registro, ultima_conexion`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhotoURL, &u.RegisteredAt, &u.LastSeenAt)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &u, nil
}

// Create inserts a new user row and seeds its default categories in one
// transaction, so a failed seed never leaves a half-bootstrapped account.
func (r *UserRepo) Create(
	ctx context.Context, name, email, passwordHash string, defaults []model.CategorySeed,
) (id int64, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `
INSERT INTO usuarios (nombre, email, password)
VALUES ($1, $2, $3)
RETURNING id`
	if err = tx.QueryRow(ctx, ins, name, email, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			err = errs.ErrAlreadyExists
		}
		return 0, err
	}

	const seed = `INSERT INTO categorias (nombre, color, icono, usuario_id) VALUES ($1, $2, $3, $4)`
	for _, c := range defaults {
		if _, err = tx.Exec(ctx, seed, c.Name, c.Color, c.Icon, id); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// GetByID selects a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM usuarios WHERE id=$1`
	return scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByEmail selects a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM usuarios WHERE email=$1`
	return scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

// UpdateProfile replaces name, email and photo reference. A nil photo
// overwrites the stored one; there is no partial update.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, name, email string, photo *string) error {
	const q = `UPDATE usuarios SET nombre=$2, email=$3, foto_perfil=$4 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, name, email, photo)
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

// TouchLastSeen stamps the last-connection time.
func (r *UserRepo) TouchLastSeen(ctx context.Context, id int64) error {
	const q = `UPDATE usuarios SET ultima_conexion=CURRENT_TIMESTAMP WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

// SetPasswordHash stores a new password hash.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	const q = `UPDATE usuarios SET password=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
