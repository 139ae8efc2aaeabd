package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/danielbloch/gantry/internal/cli"
	"github.com/danielbloch/gantry/internal/db"
	"github.com/danielbloch/gantry/internal/repository"
	"github.com/danielbloch/gantry/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.gantry/gantry.db
	dbPath := os.Getenv("GANTRY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".gantry", "gantry.db")
	}

	// Acting principal: env var or OS user.
	principal := os.Getenv("GANTRY_USER")
	if principal == "" {
		principal = os.Getenv("USER")
	}
	if principal == "" {
		principal = "local"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	membershipRepo := repository.NewSQLiteMembershipRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	permissions := service.NewPermissionService(membershipRepo)

	// Commit outcomes are logged to stderr alongside the observer's
	// use-case telemetry when GANTRY_LOG is set.
	var sink service.NotificationSink = service.NoopSink{}
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("GANTRY_LOG") != "" {
		sink = service.NewLogSink(os.Stderr)
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo, membershipRepo, uow),
		Tasks:       service.NewTaskService(taskRepo, uow),
		Permissions: permissions,
		Schedule:    service.NewScheduleService(taskRepo, permissions, sink, observer),
		Import:      service.NewImportService(uow),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app, principal)
	return rootCmd.Execute()
}
