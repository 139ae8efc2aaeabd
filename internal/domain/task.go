package domain

import "time"

// Task is a schedulable unit on a project's timeline. Dates are day
// granularity, stored as UTC midnight. EndDate is inclusive and never
// precedes StartDate (a task always spans at least one day).
type Task struct {
	ID          string
	ProjectID   string
	ParentID    *string
	Title       string
	ColumnID    TaskColumn
	Color       string
	StartDate   time.Time
	EndDate     time.Time
	AssigneeIDs []string
	OrderIndex  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpanDays returns the task's duration in whole days, inclusive of both
// endpoints. A task whose start and end dates coincide spans one day.
func (t *Task) SpanDays() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}

// HierarchicalTask is a Task annotated with its depth in the flattened
// tree order. Depth 0 is a root. Derived per render pass, never persisted.
type HierarchicalTask struct {
	Task
	Depth int
}

// DateOnly truncates a time to UTC midnight, the canonical representation
// for all schedule dates in the system.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b precedes a. Both arguments are truncated to dates
// first so time-of-day never leaks into day arithmetic.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
