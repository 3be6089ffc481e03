// Package store holds the catalogue and content queries used by the web handlers.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned, wrapped, when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// notFound converts GORM's missing-record error into ErrNotFound
func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// firstImageOnly orders item images so the first one can be picked
func firstImageOnly(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC, id ASC")
}
