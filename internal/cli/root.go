package cli

import (
	"github.com/spf13/cobra"

	"github.com/danielbloch/gantry/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Tasks       service.TaskService
	Permissions service.PermissionService
	Schedule    service.ScheduleService
	Import      service.ImportService

	// IsInteractive reports whether stdin is a terminal; the timeline
	// command refuses to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App. principal is the acting user for
// permission checks.
func NewRootCmd(app *App, principal string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gantry",
		Short: "Project timeline planner",
	}

	root.AddCommand(
		newProjectCmd(app, principal),
		newTaskCmd(app),
		newTimelineCmd(app, principal),
	)

	return root
}
