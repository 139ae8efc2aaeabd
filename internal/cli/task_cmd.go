package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielbloch/gantry/internal/cli/formatter"
	"github.com/danielbloch/gantry/internal/domain"
	"github.com/danielbloch/gantry/internal/timeline"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskReorderCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, title, start, end, parent, column, color string
	var assignees []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			t := &domain.Task{
				ProjectID:   projectID,
				Title:       title,
				ColumnID:    domain.TaskColumn(column),
				Color:       color,
				StartDate:   domain.DateOnly(startDate),
				EndDate:     domain.DateOnly(endDate),
				AssigneeIDs: assignees,
			}
			if parent != "" {
				t.ParentID = &parent
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Created task %s (%s → %s)\n", t.Title, start, end)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID")
	cmd.Flags().StringVar(&column, "column", "todo", "Column (todo|in_progress|done)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (hex)")
	cmd.Flags().StringArrayVar(&assignees, "assignee", nil, "Assignee principal ID (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's tasks in timeline order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatTaskList(timeline.Flatten(tasks)))
			return nil
		},
	}
}

func newTaskReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder TASK INDEX",
		Short: "Move a task to a new position among its siblings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			if err := app.Tasks.Reorder(context.Background(), args[0], index); err != nil {
				return err
			}
			fmt.Printf("Moved task %s to position %d\n", args[0], index)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove TASK",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", args[0])
			return nil
		},
	}
}
