package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/schema"
)

// Migrate applies every pending migration from schema/pgmigrations.
// Applied versions are tracked with their checksum in schema_migrations;
// a changed file that was already applied is an error. Forward only.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	migrations, err := schema.Load(schema.MigrationsFS, schema.PostgresDir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if err := createMigrationsTable(ctx, pool); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := applyMigration(ctx, pool, m)
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
		if applied {
			log.InfoContext(ctx, "migration applied", "version", m.Version, "checksum", m.Checksum[:8])
		} else {
			log.DebugContext(ctx, "migration already applied", "version", m.Version)
		}
	}

	return nil
}

func createMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	_, err := pool.Exec(ctx, q)
	return err
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m schema.Migration) (bool, error) {
	var existing string
	err := pool.QueryRow(ctx, `SELECT checksum FROM schema_migrations WHERE version = $1`, m.Version).Scan(&existing)
	switch {
	case err == nil:
		if existing != m.Checksum {
			return false, &schema.ChecksumMismatchError{Version: m.Version, Applied: existing, Embedded: m.Checksum}
		}
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, HandlePgError(err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("execute migration: %w", HandlePgError(err))
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)`, m.Version, m.Checksum); err != nil {
		return false, fmt.Errorf("record migration: %w", HandlePgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}
