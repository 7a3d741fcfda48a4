package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/todo"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the tasks file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			s := todo.Schema()
			fmt.Fprint(out, s)
			if !strings.HasSuffix(s, "\n") {
				fmt.Fprintln(out)
			}
		},
	}
}
