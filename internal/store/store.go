// Package store opens the configured workspace repository.
package store

import (
	"fmt"

	"github.com/Talha76/memorize-words/internal/config"
	"github.com/Talha76/memorize-words/internal/repository"
	"github.com/Talha76/memorize-words/internal/repository/memory"
	"github.com/Talha76/memorize-words/internal/repository/postgres"

	"go.uber.org/zap"
)

// Open returns the workspace repository selected by cfg.Store and a func releasing it
func Open(cfg *config.Config, logger *zap.Logger) (repository.WorkspaceRepository, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Info("Using in-memory workspace store")
		return memory.NewWorkspaceRepo(), func() {}, nil

	case config.StorePostgres:
		db, err := postgres.Connect(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := postgres.Migrate(db, cfg.MigrationsPath, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database migrations completed")

		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database", zap.Error(err))
			}
		}
		return postgres.NewWorkspaceRepo(db), closeDB, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
