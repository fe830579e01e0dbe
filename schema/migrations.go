// Package schema contains the embedded, forward-only SQL migrations.
package schema

import (
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migration directories inside MigrationsFS.
const (
	PostgresDir = "pgmigrations"
	SQLiteDir   = "sqlitemigrations"
)

// MigrationsFS contains all SQL migration files.
//
//go:embed pgmigrations/*.sql sqlitemigrations/*.sql
var MigrationsFS embed.FS

// Migration is one SQL file. Version is the file name; migrations apply in
// lexical order, so names carry a numeric prefix (001_xxx.sql).
type Migration struct {
	Version  string
	SQL      string
	Checksum string
}

// Load returns the migrations in dir sorted by version.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	var migrations []Migration

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sql") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read migration file: %w", err)
		}

		migrations = append(migrations, Migration{
			Version:  path.Base(p),
			SQL:      string(content),
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// ChecksumMismatchError reports a migration edited after it was applied.
type ChecksumMismatchError struct {
	Version  string
	Applied  string
	Embedded string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: migration %s has been modified after being applied (applied: %.8s, embedded: %.8s)",
		e.Version, e.Applied, e.Embedded)
}
