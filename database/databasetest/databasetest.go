// Package databasetest opens throwaway in-memory databases for tests.
package databasetest

import (
	"testing"

	"github.com/flowershop/config"
	"github.com/flowershop/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated, empty in-memory sqlite database private to t
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1",
	}
	db, err := database.Open(cfg, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Seeded returns a database from New filled with the demo data set
func Seeded(t *testing.T) *gorm.DB {
	t.Helper()

	db := New(t)
	require.NoError(t, database.SeedData(db, false))
	return db
}
