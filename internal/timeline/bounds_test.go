package timeline

import (
	"testing"
	"time"

	"github.com/danielbloch/gantry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func spanTask(id, start, end string) domain.Task {
	return domain.Task{
		ID:        id,
		Title:     id,
		StartDate: date(start),
		EndDate:   date(end),
	}
}

func TestComputeBounds_EmptyTaskSet(t *testing.T) {
	now := date("2024-03-14") // a Thursday
	b := ComputeBounds(nil, now, DefaultConfig())

	assert.Equal(t, 30, b.TotalDays)
	assert.Equal(t, time.Monday, b.Origin.Weekday())
	assert.Equal(t, date("2024-03-11"), b.Origin, "origin anchors at this week's start")
}

func TestComputeBounds_PadsAndWeekAligns(t *testing.T) {
	// Wed 2024-01-10 .. Fri 2024-01-12.
	tasks := []domain.Task{spanTask("t1", "2024-01-10", "2024-01-12")}
	b := ComputeBounds(tasks, date("2024-01-11"), DefaultConfig())

	// min-7d = Wed 01-03, floored to Mon 01-01.
	assert.Equal(t, date("2024-01-01"), b.Origin)
	assert.Equal(t, time.Monday, b.Origin.Weekday())

	// max+7d = Fri 01-19, advanced to Mon 01-22 → three full weeks.
	assert.Equal(t, 21, b.TotalDays)
}

func TestComputeBounds_MondayEdgeGetsFullWeekPadding(t *testing.T) {
	// Task range whose padded edges land exactly on Mondays.
	tasks := []domain.Task{spanTask("t1", "2024-01-15", "2024-01-15")}
	b := ComputeBounds(tasks, date("2024-01-15"), DefaultConfig())

	// 01-15 is a Monday; minus 7 days is Mon 01-08, already aligned.
	assert.Equal(t, date("2024-01-08"), b.Origin)
	// Plus 7 days is Mon 01-22; the far edge still advances a week.
	assert.Equal(t, 21, b.TotalDays)
}

func TestComputeBounds_CoversAllStartAndEndDates(t *testing.T) {
	tasks := []domain.Task{
		spanTask("a", "2024-02-10", "2024-02-12"),
		spanTask("b", "2024-01-05", "2024-01-08"),
		spanTask("c", "2024-03-01", "2024-03-20"),
	}
	b := ComputeBounds(tasks, date("2024-02-01"), DefaultConfig())

	for _, task := range tasks {
		assert.True(t, b.Contains(task.StartDate), "start of %s inside bounds", task.ID)
		assert.True(t, b.Contains(task.EndDate), "end of %s inside bounds", task.ID)
	}
}

func TestBounds_DateToPositionRoundTrip(t *testing.T) {
	tasks := []domain.Task{spanTask("t1", "2024-01-10", "2024-01-20")}
	cfg := DefaultConfig()
	b := ComputeBounds(tasks, date("2024-01-15"), cfg)

	for d := 0; d < b.TotalDays; d++ {
		day := b.Origin.AddDate(0, 0, d)
		px := b.DateToPosition(day)
		assert.Equal(t, d*cfg.DayWidth, px)
		assert.Equal(t, day, b.PositionToDate(px))
	}
}

func TestBounds_PositionToDateRoundsToNearestDay(t *testing.T) {
	b := Bounds{Origin: date("2024-01-01"), TotalDays: 30, DayWidth: 40}

	tests := []struct {
		name string
		px   int
		want time.Time
	}{
		{"exact day boundary", 80, date("2024-01-03")},
		{"just under half a day rounds down", 99, date("2024-01-03")},
		{"half a day rounds up", 100, date("2024-01-04")},
		{"just past half a day rounds up", 101, date("2024-01-04")},
		{"negative position rounds before origin", -60, date("2023-12-30")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.PositionToDate(tc.px))
		})
	}
}

func TestBounds_RecomputedNotCached(t *testing.T) {
	cfg := DefaultConfig()
	now := date("2024-01-15")

	tasks := []domain.Task{spanTask("t1", "2024-01-10", "2024-01-12")}
	first := ComputeBounds(tasks, now, cfg)

	tasks = append(tasks, spanTask("t2", "2024-03-01", "2024-03-05"))
	second := ComputeBounds(tasks, now, cfg)

	require.Equal(t, first.Origin, second.Origin)
	assert.Greater(t, second.TotalDays, first.TotalDays,
		"extending the task set must extend the span on the next computation")
}
