// Package migrations holds the PostgreSQL schema as ordered SQL files.
// Each NNNN_name.sql may have a NNNN_name_rollback.sql counterpart.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

const rollbackSuffix = "_rollback.sql"

// ErrNothingToRollback is returned by Rollback when no migration has been applied.
var ErrNothingToRollback = errors.New("no migrations to rollback")

// FS exposes the embedded migration files.
func FS() fs.FS { return files }

// Names returns the forward migration file names in apply order.
func Names(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// Apply runs every migration in fsys that is not yet recorded. It returns the names applied.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS) ([]string, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}
	names, err := Names(fsys)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		var exists bool
		if err := db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if exists {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
			return err
		}); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

// Rollback reverts the most recently applied migration and returns its name.
func Rollback(ctx context.Context, db *sql.DB, fsys fs.FS) (string, error) {
	if err := ensureTable(ctx, db); err != nil {
		return "", err
	}

	var name string
	err := db.QueryRowContext(ctx, "SELECT name FROM schema_migrations ORDER BY applied_at DESC, name DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNothingToRollback
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackName := strings.TrimSuffix(name, ".sql") + rollbackSuffix
	content, err := fs.ReadFile(fsys, rollbackName)
	if err != nil {
		return "", fmt.Errorf("rollback file not found: %s", rollbackName)
	}
	err = inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE name = $1", name)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to roll back %s: %w", name, err)
	}
	return name, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
