package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielbloch/gantry/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ColumnStyle returns the lipgloss style for a task column.
func ColumnStyle(c domain.TaskColumn) lipgloss.Style {
	switch c {
	case domain.ColumnDone:
		return StyleGreen
	case domain.ColumnInProgress:
		return StyleYellow
	default:
		return StyleFg
	}
}

// ColumnIndicator returns a colored status glyph for a task column.
func ColumnIndicator(c domain.TaskColumn) string {
	switch c {
	case domain.ColumnDone:
		return StyleGreen.Render("✓")
	case domain.ColumnInProgress:
		return StyleYellow.Render("▶")
	default:
		return StyleDim.Render("○")
	}
}

// BarStyle returns the fill style for a task bar, falling back to the
// default foreground when the task carries no color.
func BarStyle(color string) lipgloss.Style {
	if color == "" {
		return StyleBlue
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
