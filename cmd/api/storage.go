package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/tripscout/internal/config"
	"github.com/pkordes/tripscout/internal/repo"
	"github.com/pkordes/tripscout/internal/store"
	"github.com/pkordes/tripscout/migrations"
)

// openPersister builds the snapshot backend named in cfg, running migrations
// for the SQL ones. The returned func releases its connections.
func openPersister(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Persister, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping: %w", err)
		}
		// goose needs database/sql; share the pool's connections.
		db := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, goose.DialectPostgres, db)
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("database connection established", "migrations_applied", applied)
		return repo.NewPostgresRepo(pool), pool.Close, nil

	case config.BackendSQLite:
		db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		applied, err := migrations.Up(ctx, goose.DialectSQLite3, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("sqlite database opened", "path", cfg.SQLitePath, "migrations_applied", applied)
		return repo.NewSQLiteRepo(db), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client, err := repo.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis connection established")
		return repo.NewRedisRepo(client, ""), func() { _ = client.Close() }, nil

	case config.BackendMemory:
		log.Warn("memory storage selected, data is lost on restart")
		return repo.NewMemoryRepo(), func() {}, nil

	default:
		log.Info("file storage", "path", cfg.DataFile)
		return repo.NewFileRepo(cfg.DataFile), func() {}, nil
	}
}
