package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripscout/internal/domain"
)

// PostgresRepo keeps snapshots in the snapshots table, one row per namespace.
type PostgresRepo struct {
	db db
}

// NewPostgresRepo constructs a PostgresRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresRepo(db db) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Load returns the payload stored for namespace.
func (r *PostgresRepo) Load(ctx context.Context, namespace string) ([]byte, error) {
	const q = `SELECT payload FROM snapshots WHERE namespace = @namespace`

	var payload []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"namespace": namespace}).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("repo.PostgresRepo.Load: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.PostgresRepo.Load: %w", err)
	}
	return payload, nil
}

// Save upserts the payload for namespace.
func (r *PostgresRepo) Save(ctx context.Context, namespace string, data []byte) error {
	const q = `
		INSERT INTO snapshots (namespace, payload, updated_at)
		VALUES (@namespace, @payload::jsonb, now())
		ON CONFLICT (namespace) DO UPDATE
		SET payload    = EXCLUDED.payload,
		    updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"namespace": namespace,
		"payload":   string(data),
	}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.PostgresRepo.Save: %w", err)
	}
	return nil
}
