package timeline

import (
	"time"

	"github.com/danielbloch/gantry/internal/domain"
)

// Frame is the per-render snapshot consumed by the presentation layer:
// the flattened task sequence with depth, per-row bar geometry, the live
// ghost and reorder indicator (nil when idle), and the today marker.
// Everything in a Frame is a view over the task list passed to
// BuildFrame; nothing is retained between frames.
type Frame struct {
	Rows      []domain.HierarchicalTask
	Bars      []BarGeometry // parallel to Rows
	Bounds    Bounds
	Ghost     *GhostPreview
	Indicator *ReorderIndicator
	TodayX    int
}

// BuildFrame derives a complete render snapshot from the task list.
// ctrl may be nil for a static (non-interactive) frame.
func BuildFrame(tasks []domain.Task, now time.Time, cfg Config, ctrl *Controller) Frame {
	rows := Flatten(tasks)
	bounds := ComputeBounds(tasks, now, cfg)

	bars := make([]BarGeometry, len(rows))
	for i, r := range rows {
		bars[i] = BarFor(i, r.Task, bounds, cfg)
	}

	f := Frame{
		Rows:   rows,
		Bars:   bars,
		Bounds: bounds,
		TodayX: bounds.DateToPosition(now),
	}
	if ctrl != nil {
		f.Ghost = ctrl.Ghost()
		f.Indicator = ctrl.Indicator()
	}
	return f
}

// RowAt returns the flattened index of the row containing pixel y, or -1
// when y is outside the grid.
func (f Frame) RowAt(y int, cfg Config) int {
	if y < 0 || cfg.RowHeight <= 0 {
		return -1
	}
	idx := y / cfg.RowHeight
	if idx >= len(f.Rows) {
		return -1
	}
	return idx
}
