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

type ProjectServiceImpl struct {
	projects    repository.ProjectRepo
	memberships repository.MembershipRepo
	uow         db.UnitOfWork
}

func NewProjectService(projects repository.ProjectRepo, memberships repository.MembershipRepo, uow db.UnitOfWork) *ProjectServiceImpl {
	return &ProjectServiceImpl{projects: projects, memberships: memberships, uow: uow}
}

// Create persists the project and the creator's owner membership in a
// single transaction. A project with no owner is unreachable, so the two
// writes succeed or fail together.
func (s *ProjectServiceImpl) Create(ctx context.Context, p *domain.Project, creator string) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if creator == "" {
		return fmt.Errorf("project creator is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		m := &domain.Membership{
			ProjectID:   p.ID,
			PrincipalID: creator,
			Role:        domain.RoleOwner,
			CreatedAt:   now,
		}
		if err := repository.NewSQLiteMembershipRepo(tx).Upsert(ctx, m); err != nil {
			return fmt.Errorf("granting owner membership: %w", err)
		}
		return nil
	})
}

func (s *ProjectServiceImpl) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectServiceImpl) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *ProjectServiceImpl) AddMember(ctx context.Context, projectID, principalID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	return s.memberships.Upsert(ctx, &domain.Membership{
		ProjectID:   projectID,
		PrincipalID: principalID,
		Role:        role,
		CreatedAt:   time.Now(),
	})
}

func (s *ProjectServiceImpl) Archive(ctx context.Context, id string) error {
	return s.projects.Archive(ctx, id)
}
