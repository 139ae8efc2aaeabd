package service

import (
	"context"
	"fmt"

	"github.com/danielbloch/gantry/internal/repository"
)

// PermissionServiceImpl resolves edit rights from project memberships.
type PermissionServiceImpl struct {
	memberships repository.MembershipRepo
}

func NewPermissionService(memberships repository.MembershipRepo) *PermissionServiceImpl {
	return &PermissionServiceImpl{memberships: memberships}
}

func (s *PermissionServiceImpl) CanEditSchedule(ctx context.Context, principal, projectID string) (bool, error) {
	m, err := s.memberships.Get(ctx, projectID, principal)
	if err != nil {
		return false, fmt.Errorf("loading membership: %w", err)
	}
	if m == nil {
		return false, nil
	}
	return m.Role.CanEditSchedule(), nil
}

// ScheduleOracle adapts a PermissionService to the synchronous oracle the
// drag controller consults at interaction start. Lookup errors are
// treated as a denial so a beginning drag never blocks on the caller.
type ScheduleOracle struct {
	perms PermissionService
}

func NewScheduleOracle(perms PermissionService) *ScheduleOracle {
	return &ScheduleOracle{perms: perms}
}

func (o *ScheduleOracle) CanEditSchedule(principal, projectID string) bool {
	ok, err := o.perms.CanEditSchedule(context.Background(), principal, projectID)
	if err != nil {
		return false
	}
	return ok
}
