package repository

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// AnalyticsRepository provides read-only aggregate queries for charts.
type AnalyticsRepository interface {
	// TasksByCategory counts tasks per category; categories without tasks
	// still appear with a zero count.
	TasksByCategory(ctx context.Context, ownerID int64) ([]model.CategoryCount, error)
	// TasksByStatus counts tasks grouped by status.
	TasksByStatus(ctx context.Context, ownerID int64) ([]model.StatusCount, error)
	// TasksByPriority counts tasks grouped by priority.
	TasksByPriority(ctx context.Context, ownerID int64) ([]model.PriorityCount, error)
	// WeeklyCompletions returns daily completion counts for the trailing 7 days.
	WeeklyCompletions(ctx context.Context, ownerID int64) ([]model.DailyCompletion, error)
	// Upcoming returns non-completed tasks due within the next 7 days.
	Upcoming(ctx context.Context, ownerID int64) ([]model.Task, error)
	// RecentTasks returns the owner's newest tasks with category info.
	RecentTasks(ctx context.Context, ownerID int64, limit int) ([]model.Task, error)
}
