package datastores

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	t.Setenv("DSTEST_DB_DRIVER", "postgres")
	t.Setenv("DSTEST_DB_AUTO_MIGRATE", "false")
	t.Setenv("DSTEST_PG_DATABASE_URL", "postgres://u:p@db:5432/tasks")
	t.Setenv("DSTEST_SQLITE_PATH", "/tmp/tasks.db")

	o, err := LoadOptions("DSTEST")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, o.Driver)
	assert.False(t, o.AutoMigrate)
	assert.False(t, o.LogQueries)
	assert.Equal(t, "postgres://u:p@db:5432/tasks", o.Postgres.DatabaseURL)
	assert.Equal(t, 25, o.Postgres.MaxConns)
	assert.Equal(t, "/tmp/tasks.db", o.SQLite.Path)
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	o, err := LoadOptions("DSTEST_UNSET")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, o.Driver)
	assert.True(t, o.AutoMigrate)
	o.SQLite.Path = filepath.Join(t.TempDir(), "tasks.db")

	ds, err := Open(ctx, log, o)
	require.NoError(t, err)
	assert.Nil(t, ds.Postgres)
	require.NotNil(t, ds.SQLite)

	require.NoError(t, ds.Migrate(ctx))
	require.NoError(t, ds.StatusCheck(ctx))
	require.NoError(t, ds.Close())
	assert.Error(t, ds.StatusCheck(ctx))
}

func TestOpenUnknownDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := Open(context.Background(), log, Options{Config: Config{Driver: "oracle"}})
	assert.ErrorContains(t, err, `unknown database driver "oracle"`)
}
