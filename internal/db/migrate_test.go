package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_InMemoryMigrates(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"projects", "tasks", "task_assignees", "memberships"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s must exist", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// Re-running the full migration set must not error.
	assert.NoError(t, Migrate(database))
}

func TestSchema_RejectsInvertedDates(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(
		`INSERT INTO projects (id, org_id, name, created_at, updated_at)
		 VALUES ('p1', 'o1', 'P', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(
		`INSERT INTO tasks (id, project_id, title, start_date, end_date, created_at, updated_at)
		 VALUES ('t1', 'p1', 'T', '2024-01-05', '2024-01-01', 'x', 'x')`)
	assert.Error(t, err, "end before start violates the span check")
}
