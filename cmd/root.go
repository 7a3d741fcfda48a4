// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/tasks"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app holds the state resolved once per invocation, before any subcommand runs.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	svc    *tasks.Service
	clock  func() time.Time
}

// Option configures the root command.
type Option func(*app)

// WithClock overrides the time source used by task operations.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		a.clock = now
	}
}

// NewRootCommand creates the root command and all subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:   "task-cli",
		Short: "Track tasks from the command line",
		Long: `task-cli keeps a list of short tasks in a local JSON file.

Tasks move between todo, in-progress, and done. The store file defaults to
tasks.json in the working directory and is created on first use.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newAddCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newMarkCommand(a, "mark-in-progress", "Mark a task as in progress", a.markInProgress),
		newMarkCommand(a, "mark-done", "Mark a task as done", a.markDone),
		newListCommand(a),
		newExportCommand(a),
		newBoardCommand(a),
		newConfigCommand(a),
		newSchemaCommand(),
		newVersionCommand(),
	)

	return cmd
}

// Run executes the CLI with args.
func Run(ctx context.Context, args []string, opts ...Option) error {
	cmd := NewRootCommand(opts...)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// setup loads configuration and builds the logger and task service.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogOptions())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.svc = tasks.New(cfg.TasksFile, tasks.WithClock(a.clock), tasks.WithLogger(logger))
	logger.Debug("configuration loaded", "tasks_file", cfg.TasksFile, "command", cmd.Name())
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "task-cli %s\n", Version)
		},
	}
}
