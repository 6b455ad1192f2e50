package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/pkordes/tripscout/internal/domain"
)

// OpenSQLite opens the database file at path with WAL journaling and a busy
// timeout. The pragmas ride on the DSN so every pooled connection gets them.
// The caller runs migrations and closes the handle.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	return db, nil
}

// SQLiteRepo keeps snapshots in a local sqlite file.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo wraps an open, migrated sqlite handle.
func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

// Load returns the payload stored for namespace.
func (r *SQLiteRepo) Load(ctx context.Context, namespace string) ([]byte, error) {
	const q = `SELECT payload FROM snapshots WHERE namespace = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, q, namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("repo.SQLiteRepo.Load: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteRepo.Load: %w", err)
	}
	return []byte(payload), nil
}

// Save upserts the payload for namespace.
func (r *SQLiteRepo) Save(ctx context.Context, namespace string, data []byte) error {
	const q = `
		INSERT INTO snapshots (namespace, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (namespace) DO UPDATE
		SET payload    = excluded.payload,
		    updated_at = excluded.updated_at`

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, q, namespace, string(data), now); err != nil {
		return fmt.Errorf("repo.SQLiteRepo.Save: %w", err)
	}
	return nil
}
