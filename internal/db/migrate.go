package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent;
// ALTER TABLE re-runs that hit an existing column are tolerated.
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
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		org_id      TEXT NOT NULL,
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		title       TEXT NOT NULL,
		column_id   TEXT NOT NULL DEFAULT 'todo'
		            CHECK(column_id IN ('todo','in_progress','done')),
		color       TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,

	`CREATE TABLE IF NOT EXISTS task_assignees (
		task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		principal_id TEXT NOT NULL,
		PRIMARY KEY (task_id, principal_id)
	)`,

	`CREATE TABLE IF NOT EXISTS memberships (
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		principal_id TEXT NOT NULL,
		role         TEXT NOT NULL
		             CHECK(role IN ('viewer','editor','owner')),
		created_at   TEXT NOT NULL,
		PRIMARY KEY (project_id, principal_id)
	)`,
}
