// Package storetest provides a migrated in-memory store for tests.
package storetest

import (
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/storefront/internal/store"
	"github.com/tair/storefront/pkg/database"
)

// New returns a store backed by a fresh in-memory sqlite database
func New(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	s := store.New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s, db
}
