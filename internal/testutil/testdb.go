package testutil

import (
	"database/sql"
	"testing"

	"github.com/danielokim/quotekit/internal/db"
)

// NewTestDB opens an in-memory quote database with the schema migrated,
// closed automatically when the test finishes. Concurrency tests need a
// file-backed database instead; in-memory connections do not contend.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
