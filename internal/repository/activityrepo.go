package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// ActivityRepository provides the append-only audit trail.
type ActivityRepository interface {
	// Record appends one activity entry.
	Record(ctx context.Context, ownerID int64, kind string, detail *string) error
	// Recent returns the owner's newest entries, most recent first.
	Recent(ctx context.Context, ownerID int64, limit int) ([]model.Activity, error)
}
