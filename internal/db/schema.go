package db

import "database/sql"

// SchemaSQL is the complete schema for a fresh database.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for tests: adapter tests load it via
// GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so a column
// referenced by repository code but missing here fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Kanban board (one row per task, replaced whole on save)
CREATE TABLE IF NOT EXISTS kanban_tasks (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('backlog', 'inprogress', 'done')) DEFAULT 'backlog',
	priority TEXT NOT NULL CHECK(priority IN ('high', 'medium', 'low')) DEFAULT 'medium',
	project TEXT NOT NULL DEFAULT 'Other',
	owner TEXT NOT NULL DEFAULT 'System',
	source TEXT NOT NULL CHECK(source IN ('manual', 'todo', 'active_context', 'subagent')) DEFAULT 'manual',
	description TEXT,
	tags TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_kanban_tasks_position ON kanban_tasks(position);

-- Activity log (audit trail of board mutations)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	actor TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete', 'sync')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_activity_log_timestamp ON activity_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
`

// InitSchema creates the schema on a fresh database and migrates an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('schema_version', 'kanban_tasks')").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly and mark
	// every migration as applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
