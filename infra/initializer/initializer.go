package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/infra"
	"github.com/amirasaad/fintrack/infra/cache"
	infra_repository "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"gorm.io/gorm"
)

const redisPingTimeout = 5 * time.Second

// Resources are the handles opened by InitializeDependencies.
type Resources struct {
	DB    *gorm.DB
	Redis *cache.RedisStorage
}

// Close releases the database pool and the Redis client.
func (r *Resources) Close() error {
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// InitializeDependencies builds the logger, opens the database, applies
// migrations when DATABASE_AUTO_MIGRATE is set and connects the optional
// Redis rate limit store.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	res *Resources,
	err error,
) {
	logger := SetupLogger(cfg.Log)
	deps = &app.Deps{Logger: logger}
	opened := &Resources{}
	res = opened
	defer func() {
		if err != nil {
			_ = opened.Close()
		}
	}()

	res.DB, err = OpenDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DB.AutoMigrate {
		if err = infra.RunMigrations(res.DB, cfg.DB.Url); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			return nil, nil, err
		}
		logger.Info("Database migrations applied")
	}
	deps.Uow = infra_repository.NewUoW(res.DB)

	if cfg.Redis != nil && cfg.Redis.URL != "" {
		res.Redis, err = cache.NewRedisStorage(cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis storage: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err = res.Redis.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to reach Redis: %w", err)
		}
		deps.RateLimitStorage = res.Redis
		logger.Info("Rate limiter uses Redis storage")
	}

	return deps, res, nil
}

// OpenDatabase connects to DATABASE_URL.
func OpenDatabase(cfg *config.App, logger *slog.Logger) (*gorm.DB, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	driver, _ := infra.Driver(cfg.DB.Url)
	logger.Info("Database connected", "driver", driver)
	return db, nil
}
