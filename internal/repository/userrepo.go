// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// UserRepository provides account storage.
type UserRepository interface {
	// Create inserts a new user together with its default categories in a
	// single transaction and returns the new user id.
	Create(ctx context.Context, name, email, passwordHash string, defaults []model.CategorySeed) (int64, error)
	// GetByID loads a user by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email, including the password hash.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateProfile replaces name, email and photo reference.
	UpdateProfile(ctx context.Context, id int64, name, email string, photo *string) error
	// TouchLastSeen stamps the last-connection time.
	TouchLastSeen(ctx context.Context, id int64) error
	// SetPasswordHash stores a new password hash.
	SetPasswordHash(ctx context.Context, id int64, hash string) error
}
