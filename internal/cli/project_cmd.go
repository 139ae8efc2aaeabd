package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielbloch/gantry/internal/cli/formatter"
	"github.com/danielbloch/gantry/internal/domain"
)

// resolveProjectID turns user input (full UUID or unique prefix) into a
// project ID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App, principal string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app, principal),
		newProjectListCmd(app),
		newProjectArchiveCmd(app),
		newProjectMemberCmd(app),
		newProjectImportCmd(app, principal),
	)

	return cmd
}

func newProjectCreateCmd(app *App, principal string) *cobra.Command {
	var name, org string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				OrgID: org,
				Name:  name,
			}
			if err := app.Projects.Create(context.Background(), p, principal); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&org, "org", "", "Organization (tenant) ID")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Archived project %s\n", projectID)
			return nil
		},
	}
}

func newProjectImportCmd(app *App, principal string) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project with its tasks from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportProject(context.Background(), args[0], principal)
			if err != nil {
				return err
			}
			fmt.Printf("Imported project %s [%s] with %d tasks\n",
				result.Project.Name, result.Project.DisplayID(), result.TaskCount)
			return nil
		},
	}
}

func newProjectMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project memberships",
	}

	var role string
	add := &cobra.Command{
		Use:   "add PROJECT PRINCIPAL",
		Short: "Add or update a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.AddMember(ctx, projectID, args[1], domain.Role(role)); err != nil {
				return err
			}
			fmt.Printf("Added %s as %s\n", args[1], role)
			return nil
		},
	}
	add.Flags().StringVar(&role, "role", string(domain.RoleViewer), "Role (viewer|editor|owner)")

	cmd.AddCommand(add)
	return cmd
}
