package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Every collection lives in one table; data holds the record body as a
	// JSON object without its id, which is the document key.
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL
		           CHECK(collection IN ('upcomingProjects','onDevelopmentProjects','completedProjects','operationalBudgets','expenses')),
		id         TEXT NOT NULL,
		data       TEXT NOT NULL CHECK(json_valid(data)),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(collection, created_at)`,
}
