package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-schedule-view/internal/config"
	"github.com/preston-bernstein/nba-schedule-view/internal/logging"
	"github.com/preston-bernstein/nba-schedule-view/internal/store"
)

// Openers for the networked and on-disk backends; tests swap them out.
var (
	openSQLite = func(ctx context.Context, path string) (store.KV, error) {
		return store.NewSQLiteStore(ctx, path)
	}
	openRedis = func(ctx context.Context, url, prefix string) (store.KV, error) {
		return store.NewRedisStore(ctx, url, prefix)
	}
	openPostgres = func(ctx context.Context, dsn string) (store.KV, error) {
		return store.NewPostgresStore(ctx, dsn)
	}
)

// openStore connects the configured key-value backend.
func openStore(ctx context.Context, cfg config.StorageConfig) (store.KV, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	switch cfg.Backend {
	case config.StorageMemory:
		return store.NewMemoryStore(), nil
	case config.StorageFile, "":
		return store.NewFileStore(cfg.FilePath)
	case config.StorageSQLite:
		return openSQLite(ctx, cfg.SQLitePath)
	case config.StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis backend: %w", store.ErrNotConfigured)
		}
		return openRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend: %w", store.ErrNotConfigured)
		}
		return openPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// buildStore opens the configured backend, degrading to memory on failure.
func buildStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) store.KV {
	kv, err := openStore(ctx, cfg)
	if err != nil {
		logging.Warn(logger, "storage unavailable, falling back to memory",
			slog.String("backend", cfg.Backend),
			slog.Any("err", err),
		)
		return store.NewMemoryStore()
	}
	logging.Info(logger, "storage ready", slog.String("backend", cfg.Backend))
	return kv
}
