package timeline

import "github.com/danielbloch/gantry/internal/domain"

// BarGeometry is a task's pixel rectangle on the timeline grid.
type BarGeometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the pixel x just past the bar's right edge.
func (g BarGeometry) Right() int { return g.X + g.Width }

// BarFor computes the rectangle for the task at flattened row index i.
// The end date is inclusive, so a task spanning N days is N*DayWidth
// wide, and the width never drops below DayWidth regardless of the
// stored dates.
func BarFor(i int, t domain.Task, b Bounds, cfg Config) BarGeometry {
	startX := b.DateToPosition(t.StartDate)
	width := b.DateToPosition(t.EndDate) - startX + cfg.DayWidth
	if width < cfg.DayWidth {
		width = cfg.DayWidth
	}
	return BarGeometry{
		X:      startX,
		Y:      rowY(i, cfg),
		Width:  width,
		Height: cfg.BarHeight,
	}
}

// rowY returns the bar's top edge for row i, vertically centered in the
// row.
func rowY(i int, cfg Config) int {
	return i*cfg.RowHeight + (cfg.RowHeight-cfg.BarHeight)/2
}
