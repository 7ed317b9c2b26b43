// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. Setup uses db.GetSchemaSQL() so tests run against the authoritative
// schema; do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/commandcenter/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedActivity inserts an activity row with an explicit timestamp.
func seedActivity(t *testing.T, db *sql.DB, id, timestamp, action string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO activity_log (id, timestamp, actor, entity_type, entity_id, action) VALUES (?, ?, 'operator', 'kanban_task', 'manual-1', ?)",
		id, timestamp, action,
	)
	if err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
}
