package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/agencyops/internal/db"
	"github.com/alexanderramin/agencyops/internal/docstore"
)

// NewTestDB opens a migrated in-memory database holding an empty documents
// table. It is closed by t.Cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW wraps database in the production unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStore creates a document store over a fresh in-memory database.
func NewTestStore(t *testing.T, opts ...docstore.Option) *docstore.Store {
	t.Helper()
	database := NewTestDB(t)
	return docstore.NewStore(database, NewTestUoW(database), opts...)
}
