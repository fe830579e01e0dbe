// Package datastores opens whichever database the process is configured
// for and gives it a single lifecycle: migrate, status check, close.
package datastores

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrazmi/tasktracker/infrastructure/postgresdb"
	"github.com/jrazmi/tasktracker/infrastructure/sqlitedb"
	"github.com/jrazmi/tasktracker/sdk/environment"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and tunes the database.
type Config struct {
	Driver      string `env:"DB_DRIVER" default:"sqlite"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" default:"true"`
	LogQueries  bool   `env:"DB_LOG_QUERIES" default:"false"`
}

// Options is everything needed to open either driver.
type Options struct {
	Config
	Postgres postgresdb.Options
	SQLite   sqlitedb.Options
}

// LoadOptions reads Options from the prefixed environment.
func LoadOptions(prefix string) (Options, error) {
	var o Options
	if err := environment.ParseEnvTags(prefix, &o.Config); err != nil {
		return Options{}, fmt.Errorf("parsing datastore config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &o.Postgres); err != nil {
		return Options{}, fmt.Errorf("parsing postgres config: %w", err)
	}
	if err := environment.ParseEnvTags(prefix, &o.SQLite); err != nil {
		return Options{}, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return o, nil
}

// Datastore holds the open handle for the configured driver. Exactly one
// of Postgres or SQLite is set.
type Datastore struct {
	Driver   string
	Postgres *pgxpool.Pool
	SQLite   *sql.DB

	log *slog.Logger
}

// Open connects to the database named by o.Driver.
func Open(ctx context.Context, log *slog.Logger, o Options) (*Datastore, error) {
	ds := Datastore{Driver: o.Driver, log: log}

	switch o.Driver {
	case DriverPostgres:
		pool, err := postgresdb.New(o.Postgres,
			postgresdb.WithLogger(log),
			postgresdb.WithLogQueries(o.LogQueries),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		ds.Postgres = pool

	case DriverSQLite:
		db, err := sqlitedb.Open(ctx, o.SQLite)
		if err != nil {
			return nil, fmt.Errorf("configuring sqlite support: %w", err)
		}
		ds.SQLite = db

	default:
		return nil, fmt.Errorf("unknown database driver %q", o.Driver)
	}

	return &ds, nil
}

// Migrate applies pending migrations for the open driver.
func (d *Datastore) Migrate(ctx context.Context) error {
	if d.Postgres != nil {
		return postgresdb.Migrate(ctx, d.Postgres, d.log)
	}
	return sqlitedb.Migrate(ctx, d.SQLite, d.log)
}

// StatusCheck returns nil if the database answers.
func (d *Datastore) StatusCheck(ctx context.Context) error {
	if d.Postgres != nil {
		return postgresdb.StatusCheck(ctx, d.Postgres)
	}
	return sqlitedb.StatusCheck(ctx, d.SQLite)
}

// Close releases the handle.
func (d *Datastore) Close() error {
	if d.Postgres != nil {
		d.Postgres.Close()
		return nil
	}
	return d.SQLite.Close()
}
