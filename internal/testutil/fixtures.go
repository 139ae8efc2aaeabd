package testutil

import (
	"time"

	"github.com/danielbloch/gantry/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithOrgID(orgID string) ProjectOption {
	return func(p *domain.Project) {
		p.OrgID = orgID
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     "org-test",
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &parentID
	}
}

func WithColumn(c domain.TaskColumn) TaskOption {
	return func(t *domain.Task) {
		t.ColumnID = c
	}
}

func WithColor(color string) TaskOption {
	return func(t *domain.Task) {
		t.Color = color
	}
}

func WithAssignees(principalIDs ...string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeIDs = principalIDs
	}
}

func WithOrderIndex(i int) TaskOption {
	return func(t *domain.Task) {
		t.OrderIndex = i
	}
}

// NewTestTask builds a task spanning [start, end] on the given project.
// Dates are "2006-01-02" strings; a parse failure panics, which is fine
// for fixtures.
func NewTestTask(projectID, title, start, end string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		ColumnID:  domain.ColumnTodo,
		StartDate: MustDate(start),
		EndDate:   MustDate(end),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestMembership binds a principal to a project with the given role.
func NewTestMembership(projectID, principalID string, role domain.Role) *domain.Membership {
	return &domain.Membership{
		ProjectID:   projectID,
		PrincipalID: principalID,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}
}

// MustDate parses a "2006-01-02" date string, panicking on failure.
func MustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
