// Package repo contains the snapshot backends the store persists through.
// Every backend is a key-value record keyed by namespace: Load returns the
// last saved snapshot and Save replaces it. No business logic lives here.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tripscout/internal/store"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ store.Persister = (*PostgresRepo)(nil)
	_ store.Persister = (*SQLiteRepo)(nil)
	_ store.Persister = (*RedisRepo)(nil)
	_ store.Persister = (*FileRepo)(nil)
	_ store.Persister = (*MemoryRepo)(nil)
)
