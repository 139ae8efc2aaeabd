package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarFor_InclusiveEndDate(t *testing.T) {
	cfg := DefaultConfig()
	task := spanTask("t1", "2024-01-01", "2024-01-05")
	b := Bounds{Origin: date("2024-01-01"), TotalDays: 30, DayWidth: cfg.DayWidth}

	bar := BarFor(0, task, b, cfg)

	assert.Equal(t, 0, bar.X)
	// Five inclusive days: 4 day-gaps plus one DayWidth for the end day.
	assert.Equal(t, 5*cfg.DayWidth, bar.Width)
	assert.Equal(t, 5*cfg.DayWidth, bar.Right())
}

func TestBarFor_ZeroLengthTaskGetsMinimumWidth(t *testing.T) {
	cfg := DefaultConfig()
	task := spanTask("t1", "2024-01-10", "2024-01-10")
	b := Bounds{Origin: date("2024-01-01"), TotalDays: 30, DayWidth: cfg.DayWidth}

	bar := BarFor(0, task, b, cfg)

	assert.Equal(t, 9*cfg.DayWidth, bar.X)
	assert.Equal(t, cfg.DayWidth, bar.Width, "width never drops below one day")
}

func TestBarFor_RowCentering(t *testing.T) {
	cfg := Config{DayWidth: 40, RowHeight: 40, BarHeight: 24}
	task := spanTask("t1", "2024-01-01", "2024-01-02")
	b := Bounds{Origin: date("2024-01-01"), TotalDays: 30, DayWidth: cfg.DayWidth}

	for i := 0; i < 5; i++ {
		bar := BarFor(i, task, b, cfg)
		assert.Equal(t, i*cfg.RowHeight+8, bar.Y, "row %d", i)
		assert.Equal(t, cfg.BarHeight, bar.Height)
	}
}

func TestBarFor_CellScaleConfig(t *testing.T) {
	// The terminal host runs the same math at cell scale.
	cfg := Config{DayWidth: 4, RowHeight: 1, BarHeight: 1}
	task := spanTask("t1", "2024-01-03", "2024-01-04")
	b := Bounds{Origin: date("2024-01-01"), TotalDays: 30, DayWidth: cfg.DayWidth}

	bar := BarFor(3, task, b, cfg)

	assert.Equal(t, 8, bar.X)
	assert.Equal(t, 8, bar.Width)
	assert.Equal(t, 3, bar.Y)
}
