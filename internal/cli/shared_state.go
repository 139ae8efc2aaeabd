package cli

import (
	"context"

	"github.com/danielbloch/gantry/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Acting principal for permission checks and commits.
	Principal string

	// Active project context
	ActiveProjectID   string
	ActiveShortID     string
	ActiveProjectName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject resolves a project ID and sets the active project context.
func (s *SharedState) SetActiveProject(ctx context.Context, projectID string) {
	p, err := s.App.Projects.GetByID(ctx, projectID)
	if err != nil {
		return
	}
	s.SetActiveProjectFrom(p)
}

// SetActiveProjectFrom sets the active project context from an already-loaded project.
func (s *SharedState) SetActiveProjectFrom(p *domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveShortID = p.DisplayID()
	s.ActiveProjectName = p.Name
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
