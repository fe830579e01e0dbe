// Package repositories holds what is shared by every repository package.
package repositories

import (
	"errors"
)

var (
	// ErrNotFound is matched, through errors.Is, by every repository's
	// not-found error.
	ErrNotFound = errors.New("record not found")
)
