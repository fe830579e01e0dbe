// Package sqlitedb opens the embedded SQLite database used for local runs
// and tests.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Options represents the exportable SQLite configuration.
type Options struct {
	Path        string        `env:"SQLITE_PATH" default:"tasks.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// NewFromEnv opens the database described by the prefixed environment.
func NewFromEnv(ctx context.Context, prefix string) (*sql.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return Open(ctx, cfg)
}

// Open opens the database file at cfg.Path, creating its directory when
// needed. The handle is limited to a single connection so writers never
// contend for the file lock.
func Open(ctx context.Context, cfg Options) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := StatusCheck(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	return db, nil
}

// dsn appends the per-connection pragmas, so they are
// reapplied whenever database/sql opens a fresh connection.
func dsn(cfg Options) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	return cfg.Path + "?" + q.Encode()
}

// StatusCheck returns nil if it can successfully talk to the database.
func StatusCheck(ctx context.Context, db *sql.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	return db.PingContext(ctx)
}
