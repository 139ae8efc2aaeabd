package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/domain"
	"github.com/danielbloch/gantry/internal/importer"
	"github.com/danielbloch/gantry/internal/repository"
)

// ImportResult summarizes a completed project import.
type ImportResult struct {
	Project   *domain.Project
	TaskCount int
}

// ImportService loads a whole project, tasks included, from a JSON file.
type ImportService interface {
	ImportProject(ctx context.Context, path, creator string) (*ImportResult, error)
}

type ImportServiceImpl struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) *ImportServiceImpl {
	return &ImportServiceImpl{uow: uow}
}

// ImportProject validates and persists an import file in a single
// transaction, granting the creator an owner membership on the new
// project.
func (s *ImportServiceImpl) ImportProject(ctx context.Context, path, creator string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid import file: %w", errors.Join(errs...))
	}

	imported, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)
		memberships := repository.NewSQLiteMembershipRepo(tx)

		if err := projects.Create(ctx, imported.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		if creator != "" {
			m := &domain.Membership{
				ProjectID:   imported.Project.ID,
				PrincipalID: creator,
				Role:        domain.RoleOwner,
				CreatedAt:   time.Now(),
			}
			if err := memberships.Upsert(ctx, m); err != nil {
				return fmt.Errorf("granting owner membership: %w", err)
			}
		}
		for _, t := range imported.Tasks {
			if err := tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{Project: imported.Project, TaskCount: len(imported.Tasks)}, nil
}
