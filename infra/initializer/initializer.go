// Package initializer builds the application dependencies from config.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/leotinoco7/supertrunfo/infra"
	"github.com/leotinoco7/supertrunfo/infra/cache"
	"github.com/leotinoco7/supertrunfo/pkg/app"
	"github.com/leotinoco7/supertrunfo/pkg/config"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := SetupLogger(cfg.Log)
	deps.Logger = logger

	db, err := OpenDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Uow = infra.NewUoW(db)

	if cfg.Redis != nil && cfg.Redis.URL != "" {
		storage, err := cache.NewRedisStorage(cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.LimiterStorage = storage
		logger.Info("Rate limiter uses Redis storage")
	} else {
		logger.Info("Rate limiter uses in-memory storage")
	}
	return
}

// OpenDatabase connects to Postgres and applies pending migrations when
// cfg.DB.Migrate is set.
func OpenDatabase(cfg *config.App, logger *slog.Logger) (*gorm.DB, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := infra.RunMigrations(db, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	return db, nil
}
