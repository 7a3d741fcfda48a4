package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/todo"
)

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <description>",
		Short:   "Add a new task",
		Long:    `Add a new task with status todo. The assigned id is printed.`,
		Example: `  task-cli add "Buy groceries"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.svc.Add(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task added successfully (ID: %d)\n", task.ID)
			printTask(out, task)
			return nil
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <description>",
		Short:   "Update an existing task",
		Example: `  task-cli update 1 "Buy groceries and cook dinner"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := a.svc.Update(id, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task %d updated\n", task.ID)
			printTask(out, task)
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a task",
		Example: `  task-cli delete 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := a.svc.Delete(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted\n", task.ID)
			return nil
		},
	}
}

func (a *app) markInProgress(id int) (todo.Task, error) {
	return a.svc.MarkInProgress(id)
}

func (a *app) markDone(id int) (todo.Task, error) {
	return a.svc.MarkDone(id)
}

func newMarkCommand(a *app, name, short string, mark func(int) (todo.Task, error)) *cobra.Command {
	return &cobra.Command{
		Use:     name + " <id>",
		Short:   short,
		Example: fmt.Sprintf("  task-cli %s 1", name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, err := mark(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as %s\n", task.ID, task.Status)
			return nil
		},
	}
}

func statusNames() []string {
	names := make([]string, 0, 3)
	for _, s := range todo.Statuses() {
		names = append(names, string(s))
	}
	return names
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks, optionally filtered by status",
		Long: `List tasks in ascending id order.

With no argument every task is listed. Otherwise only tasks with the given
status (todo, in-progress, or done) are shown.`,
		Example: `  task-cli list
  task-cli list done`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: statusNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			list, err := a.svc.List(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				if filter == "" {
					fmt.Fprintln(out, "No tasks found.")
				} else {
					fmt.Fprintf(out, "No tasks with status %s.\n", filter)
				}
				return nil
			}
			printTaskList(out, list)
			return nil
		},
	}
}
