// Package migrations embeds the SQL migration files for every SQL backend and
// applies them with the goose provider API.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// files holds one directory of *.sql migrations per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// FS returns the migrations for dialect, rooted so goose sees the files
// directly.
func FS(dialect goose.Dialect) (fs.FS, error) {
	var dir string
	switch dialect {
	case goose.DialectPostgres:
		dir = "postgres"
	case goose.DialectSQLite3:
		dir = "sqlite"
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	return fs.Sub(files, dir)
}

// NewProvider builds a goose provider for dialect over db.
func NewProvider(dialect goose.Dialect, db *sql.DB) (*goose.Provider, error) {
	fsys, err := FS(dialect)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrations: create provider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, dialect goose.Dialect, db *sql.DB) (int, error) {
	p, err := NewProvider(dialect, db)
	if err != nil {
		return 0, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: up: %w", err)
	}
	return len(results), nil
}
