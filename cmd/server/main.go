// Command taskly-server starts the Taskly REST API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tasklyhq/taskly-server/internal/config"
	"github.com/tasklyhq/taskly-server/internal/limiter"
	"github.com/tasklyhq/taskly-server/internal/migrate"
	"github.com/tasklyhq/taskly-server/internal/repository/postgres"
	"github.com/tasklyhq/taskly-server/internal/server/httpapi"
	"github.com/tasklyhq/taskly-server/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Environment),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DSN()); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	tagRepo := postgres.NewTagRepo(db)
	taskRepo := postgres.NewTaskRepo(db)
	activityRepo := postgres.NewActivityRepo(db)
	analyticsRepo := postgres.NewAnalyticsRepo(db)

	lim := limiter.NewPG(db.Pool, 15*time.Minute, 5, 15*time.Minute)

	// Services
	authSvc := service.NewAuthService(userRepo, activityRepo, []byte(cfg.JWTSecret), lim)
	taskSvc := service.NewTaskService(taskRepo, activityRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	tagSvc := service.NewTagService(tagRepo, taskRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, taskRepo, activityRepo)

	opts := httpapi.Options{
		UploadDir:   cfg.UploadDir,
		CORSOrigins: cfg.CORSOrigins,
		Development: cfg.Development(),
	}
	api := httpapi.New(authSvc, taskSvc, categorySvc, tagSvc, analyticsSvc, logger, opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
