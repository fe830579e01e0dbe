package postgresdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHandlePgError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrDBNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "tasks_pkey"}, ErrDBDuplicatedEntry},
		{"undefined table", &pgconn.PgError{Code: undefinedTable, Message: `relation "tasks" does not exist`}, ErrUndefinedTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandlePgError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Same(t, other, HandlePgError(other))
}

func TestPrettyPrintSQL(t *testing.T) {
	in := `
		SELECT id, title
		FROM tasks
		WHERE id IN ( 1, 2 )
	`
	assert.Equal(t, "SELECT id, title FROM tasks WHERE id IN(1, 2)", prettyPrintSQL(in))
}
