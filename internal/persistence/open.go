package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/config"
)

// OpenStore builds the configured PluginConfigStore. The returned func
// releases backend connections.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (PluginConfigStore, func(), error) {
	var (
		store   PluginConfigStore
		closeFn = func() {}
	)

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		r := NewRedis(cfg.Redis, logger)
		store, closeFn = r, r.Close
	case config.BackendPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		store, closeFn = pg, pg.Close
	default:
		store = NewMemoryStore()
	}

	if cfg.Storage.SealKey != "" {
		sealer, err := NewSealer(cfg.Storage.SealKey)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		store = NewSealedStore(store, sealer)
	}

	logger.Info("plugin config store ready", zap.String("backend", cfg.Storage.Backend), zap.Bool("sealed", cfg.Storage.SealKey != ""))
	return store, closeFn, nil
}
