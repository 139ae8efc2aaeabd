package service

import (
	"context"

	"github.com/danielbloch/gantry/internal/contract"
	"github.com/danielbloch/gantry/internal/domain"
)

type ProjectService interface {
	// Create persists the project and grants the creator an owner
	// membership in one transaction.
	Create(ctx context.Context, p *domain.Project, creator string) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	AddMember(ctx context.Context, projectID, principalID string, role domain.Role) error
	Archive(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Reorder(ctx context.Context, taskID string, newIndex int) error
	Delete(ctx context.Context, id string) error
}

type PermissionService interface {
	// CanEditSchedule reports whether the principal's membership on the
	// project permits timeline edits.
	CanEditSchedule(ctx context.Context, principal, projectID string) (bool, error)
}

// ScheduleService dispatches commit intents emitted by the drag
// controller. Commits are not ordered relative to one another; callers
// needing strict ordering must serialize externally.
type ScheduleService interface {
	// Commit re-checks permission, persists the mutation, and delivers
	// exactly one event to the notification sink per attempt. The
	// returned error mirrors the event's Err.
	Commit(ctx context.Context, principal string, m contract.ScheduleMutation) error
}

// NotificationSink receives one CommitEvent per commit attempt.
type NotificationSink interface {
	Notify(ctx context.Context, event contract.CommitEvent)
}
