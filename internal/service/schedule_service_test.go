package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielbloch/gantry/internal/contract"
	"github.com/danielbloch/gantry/internal/domain"
	"github.com/danielbloch/gantry/internal/repository"
	"github.com/danielbloch/gantry/internal/testutil"
)

type scheduleFixture struct {
	svc    *ScheduleServiceImpl
	tasks  *repository.SQLiteTaskRepo
	events *[]contract.CommitEvent
	task   *domain.Task
}

func newScheduleFixture(t *testing.T, role domain.Role) scheduleFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	memberships := repository.NewSQLiteMembershipRepo(database)

	project := testutil.NewTestProject("Launch")
	require.NoError(t, projects.Create(ctx, project))

	task := testutil.NewTestTask(project.ID, "Design", "2024-01-01", "2024-01-05")
	require.NoError(t, tasks.Create(ctx, task))

	if role != "" {
		require.NoError(t, memberships.Upsert(ctx, testutil.NewTestMembership(project.ID, "alice", role)))
	}

	var events []contract.CommitEvent
	sink := SinkFunc(func(_ context.Context, e contract.CommitEvent) {
		events = append(events, e)
	})

	perms := NewPermissionService(memberships)
	svc := NewScheduleService(tasks, perms, sink, nil)
	return scheduleFixture{svc: svc, tasks: tasks, events: &events, task: task}
}

func TestScheduleCommitPersistsAndNotifies(t *testing.T) {
	f := newScheduleFixture(t, domain.RoleEditor)
	ctx := context.Background()

	m := contract.ScheduleMutation{
		TaskID:   f.task.ID,
		NewStart: testutil.MustDate("2024-01-03"),
		NewEnd:   testutil.MustDate("2024-01-07"),
	}
	require.NoError(t, f.svc.Commit(ctx, "alice", m))

	got, err := f.tasks.GetByID(ctx, f.task.ID)
	require.NoError(t, err)
	assert.True(t, got.StartDate.Equal(m.NewStart))
	assert.True(t, got.EndDate.Equal(m.NewEnd))

	require.Len(t, *f.events, 1)
	event := (*f.events)[0]
	assert.True(t, event.Succeeded())
	assert.Equal(t, f.task.ID, event.TaskID)
}

func TestScheduleCommitUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
	}{
		{name: "viewer membership", role: domain.RoleViewer},
		{name: "no membership", role: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newScheduleFixture(t, tc.role)
			ctx := context.Background()

			m := contract.ScheduleMutation{
				TaskID:   f.task.ID,
				NewStart: testutil.MustDate("2024-01-03"),
				NewEnd:   testutil.MustDate("2024-01-07"),
			}
			err := f.svc.Commit(ctx, "alice", m)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnauthorized))

			got, lookupErr := f.tasks.GetByID(ctx, f.task.ID)
			require.NoError(t, lookupErr)
			assert.True(t, got.StartDate.Equal(testutil.MustDate("2024-01-01")))

			require.Len(t, *f.events, 1)
			assert.False(t, (*f.events)[0].Succeeded())
		})
	}
}

func TestScheduleCommitRejectsInvertedDates(t *testing.T) {
	f := newScheduleFixture(t, domain.RoleOwner)

	m := contract.ScheduleMutation{
		TaskID:   f.task.ID,
		NewStart: testutil.MustDate("2024-01-07"),
		NewEnd:   testutil.MustDate("2024-01-03"),
	}
	err := f.svc.Commit(context.Background(), "alice", m)
	require.Error(t, err)

	require.Len(t, *f.events, 1)
	assert.Equal(t, err, (*f.events)[0].Err)
}

func TestScheduleCommitUnknownTask(t *testing.T) {
	f := newScheduleFixture(t, domain.RoleOwner)

	m := contract.ScheduleMutation{
		TaskID:   "missing",
		NewStart: testutil.MustDate("2024-01-01"),
		NewEnd:   testutil.MustDate("2024-01-02"),
	}
	err := f.svc.Commit(context.Background(), "alice", m)
	require.Error(t, err)
	require.Len(t, *f.events, 1)
	assert.False(t, (*f.events)[0].Succeeded())
}

func TestScheduleOracleGrantsEditor(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	memberships := repository.NewSQLiteMembershipRepo(database)

	project := testutil.NewTestProject("Launch")
	require.NoError(t, projects.Create(ctx, project))
	require.NoError(t, memberships.Upsert(ctx, testutil.NewTestMembership(project.ID, "bob", domain.RoleEditor)))

	oracle := NewScheduleOracle(NewPermissionService(memberships))
	assert.True(t, oracle.CanEditSchedule("bob", project.ID))
	assert.False(t, oracle.CanEditSchedule("carol", project.ID))
}
