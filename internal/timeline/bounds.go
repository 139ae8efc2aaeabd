package timeline

import (
	"math"
	"time"

	"github.com/danielbloch/gantry/internal/domain"
)

// emptyTimelineDays is the default span when the task set is empty.
const emptyTimelineDays = 30

// paddingDays is the margin added on both sides of the task set's date
// range before week alignment.
const paddingDays = 7

// Bounds maps between calendar dates and horizontal pixel positions.
// Origin is always week-aligned. Bounds is a pure function of the task
// set and is recomputed, not cached, whenever the set changes.
type Bounds struct {
	Origin    time.Time
	TotalDays int
	DayWidth  int
}

// ComputeBounds derives the timeline span from the given tasks. The span
// covers every start and end date with a week of padding on each side,
// both edges aligned to week starts. An empty task set yields a 30-day
// window anchored at today's week start.
func ComputeBounds(tasks []domain.Task, now time.Time, cfg Config) Bounds {
	if len(tasks) == 0 {
		return Bounds{
			Origin:    startOfWeek(domain.DateOnly(now)),
			TotalDays: emptyTimelineDays,
			DayWidth:  cfg.DayWidth,
		}
	}

	minDate := domain.DateOnly(tasks[0].StartDate)
	maxDate := domain.DateOnly(tasks[0].EndDate)
	for _, t := range tasks {
		for _, d := range []time.Time{domain.DateOnly(t.StartDate), domain.DateOnly(t.EndDate)} {
			if d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}
	}

	origin := startOfWeek(minDate.AddDate(0, 0, -paddingDays))
	end := nextWeekStart(maxDate.AddDate(0, 0, paddingDays))

	return Bounds{
		Origin:    origin,
		TotalDays: domain.DaysBetween(origin, end),
		DayWidth:  cfg.DayWidth,
	}
}

// DateToPosition returns the pixel x of the given date's left edge.
func (b Bounds) DateToPosition(d time.Time) int {
	return domain.DaysBetween(b.Origin, d) * b.DayWidth
}

// PositionToDate inverts a pixel x to the nearest day. This rounding is
// the single snapping authority: no other component rounds pixels to
// dates.
func (b Bounds) PositionToDate(px int) time.Time {
	days := int(math.Round(float64(px) / float64(b.DayWidth)))
	return b.Origin.AddDate(0, 0, days)
}

// Width returns the full pixel width of the timeline.
func (b Bounds) Width() int {
	return b.TotalDays * b.DayWidth
}

// Contains reports whether the date falls inside the timeline span.
func (b Bounds) Contains(d time.Time) bool {
	days := domain.DaysBetween(b.Origin, d)
	return days >= 0 && days < b.TotalDays
}

// startOfWeek floors a date to the previous Monday (Mondays map to
// themselves).
func startOfWeek(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// nextWeekStart advances a date to the following Monday. A date already
// on a Monday advances a full week, keeping the padding on the far side.
func nextWeekStart(d time.Time) time.Time {
	return startOfWeek(d).AddDate(0, 0, 7)
}
