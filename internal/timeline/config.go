// Package timeline converts a hierarchical task set into a pixel grid and
// drives direct manipulation of task dates through a pointer interaction
// state machine. Flattened order, bounds, and geometry are pure derivations
// of the task list passed in on every computation; the only stateful piece
// is the drag Controller, which owns the single in-flight interaction.
package timeline

// Config holds the pixel grid constants. DayWidth is the universal
// snapping granularity: every interaction resolves to whole multiples
// of it.
type Config struct {
	DayWidth  int // pixels per calendar day
	RowHeight int // pixels per task row
	BarHeight int // height of the bar within its row, <= RowHeight
}

// DefaultConfig returns the grid constants used by the standard renderer.
func DefaultConfig() Config {
	return Config{DayWidth: 40, RowHeight: 40, BarHeight: 24}
}
