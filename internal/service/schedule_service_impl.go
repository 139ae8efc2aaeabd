package service

import (
	"context"
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/contract"
	"github.com/danielbloch/gantry/internal/repository"
)

// ScheduleServiceImpl persists schedule mutations emitted by the drag
// controller. Permission is re-checked here even though the controller
// already consulted the oracle: membership may have changed between drag
// start and release.
type ScheduleServiceImpl struct {
	tasks    repository.TaskRepo
	perms    PermissionService
	sink     NotificationSink
	observer UseCaseObserver
}

func NewScheduleService(tasks repository.TaskRepo, perms PermissionService, sink NotificationSink, observer UseCaseObserver) *ScheduleServiceImpl {
	if sink == nil {
		sink = NoopSink{}
	}
	return &ScheduleServiceImpl{
		tasks:    tasks,
		perms:    perms,
		sink:     sink,
		observer: observerOrNoop(observer),
	}
}

func (s *ScheduleServiceImpl) Commit(ctx context.Context, principal string, m contract.ScheduleMutation) error {
	start := time.Now()
	err := s.commit(ctx, principal, m)

	s.sink.Notify(ctx, contract.CommitEvent{
		TaskID: m.TaskID,
		Start:  m.NewStart,
		End:    m.NewEnd,
		Err:    err,
	})
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "schedule.commit",
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"task_id": m.TaskID},
		StartedAt: start,
	})
	return err
}

func (s *ScheduleServiceImpl) commit(ctx context.Context, principal string, m contract.ScheduleMutation) error {
	if m.NewEnd.Before(m.NewStart) {
		return fmt.Errorf("end %s precedes start %s", m.NewEnd.Format("2006-01-02"), m.NewStart.Format("2006-01-02"))
	}

	task, err := s.tasks.GetByID(ctx, m.TaskID)
	if err != nil {
		return fmt.Errorf("loading task %s: %w", m.TaskID, err)
	}

	ok, err := s.perms.CanEditSchedule(ctx, principal, task.ProjectID)
	if err != nil {
		return fmt.Errorf("checking permission: %w", err)
	}
	if !ok {
		return fmt.Errorf("principal %s on project %s: %w", principal, task.ProjectID, ErrUnauthorized)
	}

	if err := s.tasks.UpdateSchedule(ctx, m.TaskID, m.NewStart, m.NewEnd); err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	return nil
}
