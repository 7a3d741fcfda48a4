package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/export"
	"github.com/nibzard/task-cli/internal/todo"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		format string
		status string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export tasks as JSON, CSV, or PDF",
		Long: `Export writes the task list to a file. Use "-" to write to stdout.

The format defaults to the extension of path. Pass --format to override it,
which is required when writing to stdout.`,
		Example: `  task-cli export tasks.csv
  task-cli export report.pdf --status done
  task-cli export - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := export.ParseFormat(format, path)
			if err != nil {
				return err
			}
			if path != "-" {
				if err := checkNotStore(path, a.cfg.TasksFile); err != nil {
					return err
				}
			}

			list, err := a.svc.List(status)
			if err != nil {
				return err
			}

			opts := export.Options{Title: title, Generated: a.clock()}
			if path == "-" {
				return export.Write(cmd.OutOrStdout(), list, f, opts)
			}
			if err := writeExportFile(path, func(w io.Writer) error {
				return export.Write(w, list, f, opts)
			}); err != nil {
				return err
			}
			a.logger.Debug("export written", "path", path, "format", f, "tasks", len(list))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(list), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Export format: json, csv, or pdf (default from file extension)")
	cmd.Flags().StringVar(&status, "status", "", "Only export tasks with this status")
	cmd.Flags().StringVar(&title, "title", "Task Report", "Title used in PDF reports")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"json", "csv", "pdf"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("status", cobra.FixedCompletions(
		statusNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// checkNotStore rejects an export destination that is the task store itself.
func checkNotStore(path, store string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve export path: %w", err)
	}
	same := abs == filepath.Clean(store)
	if !same {
		dst, dstErr := os.Stat(abs)
		src, srcErr := os.Stat(store)
		same = dstErr == nil && srcErr == nil && os.SameFile(dst, src)
	}
	if same {
		return &todo.ValidationError{
			Path: "path",
			Err:  fmt.Errorf("%s is the task store, choose a different export destination", path),
		}
	}
	return nil
}

// writeExportFile creates path and hands it to write, removing the file if
// write fails.
func writeExportFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
