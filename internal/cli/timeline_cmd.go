package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App, principal string) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline PROJECT",
		Short: "Open the interactive timeline for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("timeline requires an interactive terminal")
			}

			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			state := &SharedState{App: app, Principal: principal}
			state.SetActiveProject(ctx, projectID)

			model := newAppModel(state, newTimelineView(state, projectID))
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithReportFocus(),
			)
			_, err = program.Run()
			return err
		},
	}
}
