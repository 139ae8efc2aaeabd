package timeline

import (
	"testing"

	"github.com/danielbloch/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denyAll rejects every principal.
type denyAll struct{}

func (denyAll) CanEditSchedule(string, string) bool { return false }

func newTestController(t *testing.T, oracle PermissionOracle) *Controller {
	t.Helper()
	c, err := NewController(DefaultConfig(), oracle)
	require.NoError(t, err)
	return c
}

// beginMoveOn starts a Move drag on a freshly built frame for the task
// at row index idx and returns the frame.
func beginMoveOn(t *testing.T, c *Controller, tasks []domain.Task, idx int) Frame {
	t.Helper()
	f := BuildFrame(tasks, date("2024-01-02"), DefaultConfig(), c)
	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionMove,
		Principal: "alice",
		ProjectID: "p1",
		TaskID:    f.Rows[idx].ID,
		X:         f.Bars[idx].X,
		Y:         f.Bars[idx].Y,
		Bar:       f.Bars[idx],
		RowIndex:  idx,
		TaskCount: len(f.Rows),
		Bounds:    f.Bounds,
	})
	require.True(t, ok, "authorized move must start")
	return f
}

func TestController_MoveCommitsShiftedDates(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	// +80px at DayWidth 40 is exactly two days.
	m := c.Release(f.Bars[0].X+80, f.Bars[0].Y)

	require.NotNil(t, m)
	assert.Equal(t, "T1", m.TaskID)
	assert.Equal(t, date("2024-01-03"), m.NewStart)
	assert.Equal(t, date("2024-01-07"), m.NewEnd)
	assert.False(t, c.Active())
}

func TestController_MovePreservesDuration(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	m := c.Release(f.Bars[0].X-120, f.Bars[0].Y)

	require.NotNil(t, m)
	assert.Equal(t, date("2023-12-29"), m.NewStart)
	assert.Equal(t, date("2024-01-02"), m.NewEnd)
	assert.Equal(t, 4, domain.DaysBetween(m.NewStart, m.NewEnd))
}

func TestController_ResizeEndClampsToOneDay(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := BuildFrame(tasks, date("2024-01-02"), DefaultConfig(), c)

	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionResizeEnd,
		Principal: "alice",
		ProjectID: "p1",
		TaskID:    "T1",
		X:         f.Bars[0].Right(),
		Y:         f.Bars[0].Y,
		Bar:       f.Bars[0],
		TaskCount: 1,
		Bounds:    f.Bounds,
	})
	require.True(t, ok)

	// A 5-day shrink on a 5-day span clamps to the 1-day minimum.
	m := c.Release(f.Bars[0].Right()-200, f.Bars[0].Y)

	require.NotNil(t, m)
	assert.Equal(t, date("2024-01-01"), m.NewStart)
	assert.Equal(t, date("2024-01-01"), m.NewEnd)
}

func TestController_ResizeStartPinsRightEdge(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-08", "2024-01-12")}
	f := BuildFrame(tasks, date("2024-01-08"), cfg, c)
	initial := f.Bars[0]

	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionResizeStart,
		Principal: "alice",
		ProjectID: "p1",
		TaskID:    "T1",
		X:         initial.X,
		Y:         initial.Y,
		Bar:       initial,
		TaskCount: 1,
		Bounds:    f.Bounds,
	})
	require.True(t, ok)

	c.PointerMove(initial.X+80, initial.Y)
	ghost := c.Ghost()
	require.NotNil(t, ghost)
	assert.Equal(t, initial.Right(), ghost.Bar.Right(), "right edge stays pinned")
	assert.Equal(t, initial.Width-80, ghost.Bar.Width)

	m := c.Release(initial.X+80, initial.Y)
	require.NotNil(t, m)
	assert.Equal(t, date("2024-01-10"), m.NewStart)
	assert.Equal(t, date("2024-01-12"), m.NewEnd, "end date unchanged by a start resize")
}

func TestController_NoOpDragEmitsNothing(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	// A wiggle below half a day snaps back to the original geometry.
	c.PointerMove(f.Bars[0].X+15, f.Bars[0].Y)
	m := c.Release(f.Bars[0].X+15, f.Bars[0].Y)

	assert.Nil(t, m, "zero net pixel delta must emit no mutation")
	assert.False(t, c.Active())
	assert.Nil(t, c.Ghost())
}

func TestController_SecondBeginRejectedWhileActive(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{
		spanTask("T1", "2024-01-01", "2024-01-05"),
		spanTask("T2", "2024-01-02", "2024-01-06"),
	}
	f := beginMoveOn(t, c, tasks, 0)

	c.PointerMove(f.Bars[0].X+80, f.Bars[0].Y)
	firstGhost := c.Ghost()

	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionMove,
		Principal: "alice",
		ProjectID: "p1",
		TaskID:    "T2",
		X:         f.Bars[1].X,
		Y:         f.Bars[1].Y,
		Bar:       f.Bars[1],
		TaskCount: 2,
		Bounds:    f.Bounds,
	})

	assert.False(t, ok, "second interaction-start must be rejected")
	require.NotNil(t, c.Ghost())
	assert.Equal(t, firstGhost.TaskID, c.Ghost().TaskID, "first interaction untouched")
	assert.Equal(t, firstGhost.Bar, c.Ghost().Bar)
}

func TestController_UnauthorizedBeginHasNoEffect(t *testing.T) {
	c := newTestController(t, denyAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := BuildFrame(tasks, date("2024-01-02"), DefaultConfig(), c)

	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionMove,
		Principal: "mallory",
		ProjectID: "p1",
		TaskID:    "T1",
		X:         f.Bars[0].X,
		Y:         f.Bars[0].Y,
		Bar:       f.Bars[0],
		TaskCount: 1,
		Bounds:    f.Bounds,
	})

	assert.False(t, ok)
	assert.False(t, c.Active(), "no state transition")
	assert.Nil(t, c.Ghost(), "no ghost")
	assert.Nil(t, c.Release(f.Bars[0].X+200, f.Bars[0].Y), "no mutation ever")
}

func TestController_CancelDiscardsWithoutCommitting(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	c.PointerMove(f.Bars[0].X+400, f.Bars[0].Y)
	require.NotNil(t, c.Ghost())

	c.Cancel()

	assert.False(t, c.Active())
	assert.Nil(t, c.Ghost())
	assert.Nil(t, c.State())

	// A release after cancel is inert.
	assert.Nil(t, c.Release(f.Bars[0].X+400, f.Bars[0].Y))
}

func TestController_CancelWhenIdleIsNoOp(t *testing.T) {
	c := newTestController(t, AllowAll{})
	c.Cancel()
	assert.False(t, c.Active())
}

func TestController_EachMoveReplacesGhost(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	c.PointerMove(f.Bars[0].X+40, f.Bars[0].Y)
	c.PointerMove(f.Bars[0].X+80, f.Bars[0].Y)
	c.PointerMove(f.Bars[0].X+120, f.Bars[0].Y)

	ghost := c.Ghost()
	require.NotNil(t, ghost)
	assert.Equal(t, f.Bars[0].X+120, ghost.Bar.X, "only the latest preview is retained")
}

func TestController_MoveIsHorizontalOnly(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{
		spanTask("T1", "2024-01-01", "2024-01-05"),
		spanTask("T2", "2024-01-02", "2024-01-06"),
	}
	f := beginMoveOn(t, c, tasks, 0)

	c.PointerMove(f.Bars[0].X+80, f.Bars[0].Y+300)

	ghost := c.Ghost()
	require.NotNil(t, ghost)
	assert.Equal(t, f.Bars[0].Y, ghost.Bar.Y, "vertical position unchanged")
	assert.Equal(t, f.Bars[0].Width, ghost.Bar.Width, "width unchanged")
}

func TestController_ReorderIndicatorTracksAndClamps(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{
		spanTask("T1", "2024-01-01", "2024-01-02"),
		spanTask("T2", "2024-01-03", "2024-01-04"),
		spanTask("T3", "2024-01-05", "2024-01-06"),
	}
	f := BuildFrame(tasks, date("2024-01-01"), cfg, c)

	ok := c.Begin(BeginRequest{
		Kind:      domain.InteractionReorder,
		Principal: "alice",
		ProjectID: "p1",
		TaskID:    "T1",
		X:         0,
		Y:         f.Bars[0].Y,
		Bar:       f.Bars[0],
		RowIndex:  0,
		TaskCount: 3,
		Bounds:    f.Bounds,
	})
	require.True(t, ok)
	require.NotNil(t, c.Indicator())
	assert.Equal(t, 0, c.Indicator().Index)
	assert.Nil(t, c.Ghost(), "reorder draws no bar ghost")

	c.PointerMove(0, f.Bars[0].Y+cfg.RowHeight)
	assert.Equal(t, 1, c.Indicator().Index)

	// Dragging far past the last row clamps to it.
	c.PointerMove(0, f.Bars[0].Y+10*cfg.RowHeight)
	assert.Equal(t, 2, c.Indicator().Index)

	// Dragging above the first row clamps to zero.
	c.PointerMove(0, f.Bars[0].Y-10*cfg.RowHeight)
	assert.Equal(t, 0, c.Indicator().Index)

	// Reorder never emits a schedule mutation.
	m := c.Release(0, f.Bars[0].Y+cfg.RowHeight)
	assert.Nil(t, m)
	assert.Nil(t, c.Indicator())
	assert.False(t, c.Active())
}

func TestController_GhostVisibleImmediatelyOnBegin(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	f := beginMoveOn(t, c, tasks, 0)

	ghost := c.Ghost()
	require.NotNil(t, ghost)
	assert.Equal(t, f.Bars[0], ghost.Bar, "ghost starts at the initial geometry")
}

func TestBuildFrame_ExposesControllerTransients(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}
	now := date("2024-01-02")
	cfg := DefaultConfig()

	f := BuildFrame(tasks, now, cfg, c)
	assert.Nil(t, f.Ghost)
	assert.Nil(t, f.Indicator)
	assert.Equal(t, f.Bounds.DateToPosition(now), f.TodayX)

	beginMoveOn(t, c, tasks, 0)
	f = BuildFrame(tasks, now, cfg, c)
	require.NotNil(t, f.Ghost)
	assert.Equal(t, "T1", f.Ghost.TaskID)
}

func TestFrame_RowAt(t *testing.T) {
	cfg := DefaultConfig()
	tasks := []domain.Task{
		spanTask("T1", "2024-01-01", "2024-01-02"),
		spanTask("T2", "2024-01-03", "2024-01-04"),
	}
	f := BuildFrame(tasks, date("2024-01-01"), cfg, nil)

	assert.Equal(t, 0, f.RowAt(0, cfg))
	assert.Equal(t, 0, f.RowAt(cfg.RowHeight-1, cfg))
	assert.Equal(t, 1, f.RowAt(cfg.RowHeight, cfg))
	assert.Equal(t, -1, f.RowAt(2*cfg.RowHeight, cfg))
	assert.Equal(t, -1, f.RowAt(-5, cfg))
}

// Regression guard: a release delivered through an abnormal path (e.g.
// capture loss reported as a cancel followed by stray motion events)
// must leave the controller reusable.
func TestController_ReusableAfterExit(t *testing.T) {
	c := newTestController(t, AllowAll{})
	tasks := []domain.Task{spanTask("T1", "2024-01-01", "2024-01-05")}

	f := beginMoveOn(t, c, tasks, 0)
	c.Cancel()
	c.PointerMove(f.Bars[0].X+500, f.Bars[0].Y) // stray motion while idle

	f = beginMoveOn(t, c, tasks, 0)
	m := c.Release(f.Bars[0].X+40, f.Bars[0].Y)
	require.NotNil(t, m)
	assert.Equal(t, date("2024-01-02"), m.NewStart)
}
