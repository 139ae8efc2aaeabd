package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, parent_id, title, column_id, color,
		start_date, end_date, order_index, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo on a SQLite database or transaction.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, project_id, parent_id, title, column_id, color,
		start_date, end_date, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		nullableString(t.ParentID),
		t.Title,
		string(t.ColumnID),
		t.Color,
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.OrderIndex,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return r.replaceAssignees(ctx, t.ID, t.AssigneeIDs)
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	assignees, err := r.loadAssignees(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.AssigneeIDs = assignees[t.ID]
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	var ids []string
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	assignees, err := r.loadAssignees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].AssigneeIDs = assignees[tasks[i].ID]
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET parent_id = ?, title = ?, column_id = ?, color = ?,
		start_date = ?, end_date = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(t.ParentID),
		t.Title,
		string(t.ColumnID),
		t.Color,
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.OrderIndex,
		time.Now().UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", t.ID)
	}
	return r.replaceAssignees(ctx, t.ID, t.AssigneeIDs)
}

func (r *SQLiteTaskRepo) UpdateSchedule(ctx context.Context, taskID string, start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("task %s: end %s precedes start %s",
			taskID, formatDate(end), formatDate(start))
	}
	query := `UPDATE tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatDate(start),
		formatDate(end),
		time.Now().UTC().Format(time.RFC3339),
		taskID,
	)
	if err != nil {
		return fmt.Errorf("updating task schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", taskID)
	}
	return nil
}

// Reorder renumbers the task's sibling group (same project, same parent)
// so the task lands at newIndex, clamped to the group size. Run inside a
// unit of work when atomicity with other writes matters.
func (r *SQLiteTaskRepo) Reorder(ctx context.Context, taskID string, newIndex int) error {
	task, err := r.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	query := `SELECT id FROM tasks
		WHERE project_id = ? AND parent_id IS ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, task.ProjectID, nullableString(task.ParentID))
	if err != nil {
		return fmt.Errorf("listing siblings: %w", err)
	}
	defer rows.Close()

	var siblings []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning sibling id: %w", err)
		}
		if id != taskID {
			siblings = append(siblings, id)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating siblings: %w", err)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(siblings) {
		newIndex = len(siblings)
	}
	ordered := make([]string, 0, len(siblings)+1)
	ordered = append(ordered, siblings[:newIndex]...)
	ordered = append(ordered, taskID)
	ordered = append(ordered, siblings[newIndex:]...)

	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range ordered {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET order_index = ?, updated_at = ? WHERE id = ?`,
			i, now, id,
		); err != nil {
			return fmt.Errorf("renumbering task %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var parentID, columnID, createdAt, updatedAt sql.NullString
	var startDate, endDate string

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&parentID,
		&t.Title,
		&columnID,
		&t.Color,
		&startDate,
		&endDate,
		&t.OrderIndex,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if parentID.Valid && parentID.String != "" {
		p := parentID.String
		t.ParentID = &p
	}
	t.ColumnID = domain.TaskColumn(columnID.String)
	t.StartDate = parseDate(startDate)
	t.EndDate = parseDate(endDate)
	if ts := parseNullableTime(createdAt, time.RFC3339); ts != nil {
		t.CreatedAt = *ts
	}
	if ts := parseNullableTime(updatedAt, time.RFC3339); ts != nil {
		t.UpdatedAt = *ts
	}
	return &t, nil
}

func (r *SQLiteTaskRepo) replaceAssignees(ctx context.Context, taskID string, principalIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM task_assignees WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clearing assignees: %w", err)
	}
	for _, pid := range principalIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, principal_id) VALUES (?, ?)`,
			taskID, pid,
		); err != nil {
			return fmt.Errorf("inserting assignee: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) loadAssignees(ctx context.Context, taskIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(taskIDs))
	if len(taskIDs) == 0 {
		return out, nil
	}
	for _, id := range taskIDs {
		rows, err := r.db.QueryContext(ctx,
			`SELECT principal_id FROM task_assignees WHERE task_id = ? ORDER BY principal_id`, id)
		if err != nil {
			return nil, fmt.Errorf("loading assignees: %w", err)
		}
		for rows.Next() {
			var pid string
			if err := rows.Scan(&pid); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning assignee: %w", err)
			}
			out[id] = append(out[id], pid)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating assignees: %w", err)
		}
		rows.Close()
	}
	return out, nil
}
