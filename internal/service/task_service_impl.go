package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/domain"
	"github.com/danielbloch/gantry/internal/repository"
)

type TaskServiceImpl struct {
	tasks repository.TaskRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, uow db.UnitOfWork) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, uow: uow}
}

func (s *TaskServiceImpl) Create(ctx context.Context, t *domain.Task) error {
	if err := validateTask(t); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *TaskServiceImpl) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *TaskServiceImpl) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskServiceImpl) Update(ctx context.Context, t *domain.Task) error {
	if err := validateTask(t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	return s.tasks.Update(ctx, t)
}

// Reorder renumbers the task's sibling group inside one transaction so a
// concurrent reader never observes a half-renumbered list.
func (s *TaskServiceImpl) Reorder(ctx context.Context, taskID string, newIndex int) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskRepo(tx).Reorder(ctx, taskID, newIndex)
	})
}

func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func validateTask(t *domain.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("task project is required")
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("task end %s precedes start %s",
			t.EndDate.Format("2006-01-02"), t.StartDate.Format("2006-01-02"))
	}
	if !domain.ValidTaskColumns[string(t.ColumnID)] {
		return fmt.Errorf("invalid column %q", t.ColumnID)
	}
	return nil
}
