package testutil

import (
	"database/sql"
	"testing"

	"github.com/rsoares/grit/internal/db"
)

// NewTestDB opens an in-memory SQLite database carrying the full grit
// schema (catalog, programs, sessions, sets, records, sequences) and ties
// its lifetime to the test.
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

// NewTestUoW wraps the test database in the production UnitOfWork so service
// tests run their mutations through real transactions.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
