package service

import (
	"context"
	"time"

	"github.com/Talha76/memorize-words/internal/repository"

	"go.uber.org/zap"
)

// Janitor purges workspaces nobody touched for a while
type Janitor struct {
	repo     repository.WorkspaceRepository
	idle     time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewJanitor creates a new janitor
func NewJanitor(repo repository.WorkspaceRepository, idle, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		repo:     repo,
		idle:     idle,
		interval: interval,
		logger:   logger,
	}
}

// Cleanup removes workspaces idle for longer than the configured TTL
func (j *Janitor) Cleanup(ctx context.Context) error {
	j.logger.Info("Starting cleanup of idle workspaces", zap.Duration("idle_ttl", j.idle))

	removed, err := j.repo.DeleteIdle(ctx, j.idle)
	if err != nil {
		j.logger.Error("Failed to cleanup idle workspaces", zap.Error(err))
		return err
	}

	j.logger.Info("Cleanup completed successfully", zap.Int64("removed", removed))
	return nil
}

// Run cleans up once, then on every tick until ctx is cancelled
func (j *Janitor) Run(ctx context.Context) {
	if err := j.Cleanup(ctx); err != nil {
		j.logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			j.logger.Info("Running scheduled cleanup")
			if err := j.Cleanup(ctx); err != nil {
				j.logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
