package repository

import (
	"context"
	"time"

	"github.com/danielbloch/gantry/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error

	// UpdateSchedule persists only the task's dates. It is the single
	// write issued by the timeline commit path.
	UpdateSchedule(ctx context.Context, taskID string, start, end time.Time) error

	// Reorder moves a task to a new position among its siblings,
	// renumbering their order indexes. The timeline's reorder drag is
	// visual-only and never calls this; it exists for explicit reorder
	// commands.
	Reorder(ctx context.Context, taskID string, newIndex int) error

	Delete(ctx context.Context, id string) error
}

type MembershipRepo interface {
	Upsert(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, projectID, principalID string) (*domain.Membership, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Membership, error)
	Delete(ctx context.Context, projectID, principalID string) error
}
