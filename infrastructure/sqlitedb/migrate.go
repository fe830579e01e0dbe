package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jrazmi/tasktracker/schema"
)

// Migrate applies every pending migration from schema/sqlitemigrations,
// recording version and checksum in schema_migrations.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	migrations, err := schema.Load(schema.MigrationsFS, schema.SQLiteDir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	const q = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := applyMigration(ctx, db, m)
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

func applyMigration(ctx context.Context, db *sql.DB, m schema.Migration) (bool, error) {
	var existing string
	err := db.QueryRowContext(ctx, `SELECT checksum FROM schema_migrations WHERE version = ?`, m.Version).Scan(&existing)
	switch {
	case err == nil:
		if existing != m.Checksum {
			return false, &schema.ChecksumMismatchError{Version: m.Version, Applied: existing, Embedded: m.Checksum}
		}
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return false, fmt.Errorf("execute migration: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, checksum) VALUES (?, ?)`, m.Version, m.Checksum); err != nil {
		return false, fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}
