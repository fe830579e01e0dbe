package sqlitedb

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrazmi/tasktracker/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) *Options {
	t.Helper()
	return &Options{
		Path:        filepath.Join(t.TempDir(), "nested", "tasks.db"),
		BusyTimeout: time.Second,
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	ctx := context.Background()
	cfg := testOptions(t)

	db, err := Open(ctx, *cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, cfg.Path)
	assert.NoError(t, StatusCheck(ctx, db))
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := Open(ctx, *testOptions(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, log))
	require.NoError(t, Migrate(ctx, db, log))

	migrations, err := schema.Load(schema.MigrationsFS, schema.SQLiteDir)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, len(migrations), count)

	_, err = db.ExecContext(ctx, `INSERT INTO tasks (title, completed, created_at) VALUES ('x', 0, '2024-01-01T00:00:00Z')`)
	assert.NoError(t, err)
}

func TestMigrateDetectsChecksumDrift(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := Open(ctx, *testOptions(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, log))

	_, err = db.ExecContext(ctx, `UPDATE schema_migrations SET checksum = 'deadbeef'`)
	require.NoError(t, err)

	err = Migrate(ctx, db, log)
	var mismatch *schema.ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "deadbeef", mismatch.Applied)
}
