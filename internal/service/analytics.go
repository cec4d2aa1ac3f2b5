package service

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/repository"
)

// Default activity feed sizes per call site.
const (
	DefaultActivityLimit = 20
	DashboardFeedLimit   = 5
)

// AnalyticsService provides the read-only chart and dashboard queries.
type AnalyticsService interface {
	// Statistics returns the owner's single-row task aggregate.
	Statistics(ctx context.Context, ownerID int64) (model.Statistics, error)
	// TasksByCategory returns grouped counts per category.
	TasksByCategory(ctx context.Context, ownerID int64) ([]model.CategoryCount, error)
	// TasksByStatus returns grouped counts per status.
	TasksByStatus(ctx context.Context, ownerID int64) ([]model.StatusCount, error)
	// TasksByPriority returns grouped counts per priority.
	TasksByPriority(ctx context.Context, ownerID int64) ([]model.PriorityCount, error)
	// WeeklyCompletions returns the trailing-7-day completion trend.
	WeeklyCompletions(ctx context.Context, ownerID int64) ([]model.DailyCompletion, error)
	// Upcoming returns non-completed tasks due within the next 7 days.
	Upcoming(ctx context.Context, ownerID int64) ([]model.Task, error)
	// RecentActivity returns the newest activity entries.
	RecentActivity(ctx context.Context, ownerID int64, limit int) ([]model.Activity, error)
	// Dashboard bundles statistics, recent tasks and recent activity.
	Dashboard(ctx context.Context, ownerID int64) (model.DashboardSummary, error)
}

type AnalyticsServiceImpl struct {
	analytics repository.AnalyticsRepository
	tasks     repository.TaskRepository
	activity  repository.ActivityRepository
}

// NewAnalyticsService constructs AnalyticsService.
func NewAnalyticsService(
	analytics repository.AnalyticsRepository,
	tasks repository.TaskRepository,
	activity repository.ActivityRepository,
) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{analytics: analytics, tasks: tasks, activity: activity}
}

func (s *AnalyticsServiceImpl) Statistics(ctx context.Context, ownerID int64) (model.Statistics, error) {
	return s.tasks.Statistics(ctx, ownerID)
}

func (s *AnalyticsServiceImpl) TasksByCategory(ctx context.Context, ownerID int64) ([]model.CategoryCount, error) {
	return s.analytics.TasksByCategory(ctx, ownerID)
}

func (s *AnalyticsServiceImpl) TasksByStatus(ctx context.Context, ownerID int64) ([]model.StatusCount, error) {
	return s.analytics.TasksByStatus(ctx, ownerID)
}

func (s *AnalyticsServiceImpl) TasksByPriority(ctx context.Context, ownerID int64) ([]model.PriorityCount, error) {
	return s.analytics.TasksByPriority(ctx, ownerID)
}

func (s *AnalyticsServiceImpl) WeeklyCompletions(ctx context.Context, ownerID int64) ([]model.DailyCompletion, error) {
	return s.analytics.WeeklyCompletions(ctx, ownerID)
}

func (s *AnalyticsServiceImpl) Upcoming(ctx context.Context, ownerID int64) ([]model.Task, error) {
	return s.analytics.Upcoming(ctx, ownerID)
}

// RecentActivity clamps non-positive limits to the default feed size.
func (s *AnalyticsServiceImpl) RecentActivity(ctx context.Context, ownerID int64, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return s.activity.Recent(ctx, ownerID, limit)
}

// Dashboard bundles statistics, the 5 newest tasks and the 5 newest
// activity entries.
func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, ownerID int64) (model.DashboardSummary, error) {
	stats, err := s.tasks.Statistics(ctx, ownerID)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	recent, err := s.analytics.RecentTasks(ctx, ownerID, DashboardFeedLimit)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	acts, err := s.activity.Recent(ctx, ownerID, DashboardFeedLimit)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	return model.DashboardSummary{Statistics: stats, RecentTasks: recent, Activities: acts}, nil
}
