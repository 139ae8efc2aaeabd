package formatter

import (
	"fmt"
	"strings"

	"github.com/danielbloch/gantry/internal/domain"
)

// FormatProjectList renders a project table for the list command.
func FormatProjectList(projects []*domain.Project) string {
	var b strings.Builder
	b.WriteString(Header("Projects"))
	b.WriteByte('\n')

	for _, p := range projects {
		status := StyleGreen.Render(string(p.Status))
		if p.Status == domain.ProjectArchived {
			status = Dim(string(p.Status))
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			Dim(p.DisplayID()),
			Bold(p.Name),
			status,
		))
	}
	return b.String()
}

// FormatTaskList renders a flattened task table for the list command.
// Depth is shown by indentation; dates by their day span.
func FormatTaskList(rows []domain.HierarchicalTask) string {
	var b strings.Builder
	b.WriteString(Header("Tasks"))
	b.WriteByte('\n')

	for _, r := range rows {
		indent := strings.Repeat("  ", r.Depth)
		span := fmt.Sprintf("%s → %s",
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
		)
		b.WriteString(fmt.Sprintf("  %s%s %s  %s\n",
			indent,
			ColumnIndicator(r.ColumnID),
			ColumnStyle(r.ColumnID).Render(r.Title),
			Dim(span),
		))
	}
	return b.String()
}
