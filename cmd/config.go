package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/config"
)

func newConfigCommand(_ *app) *cobra.Command {
	var example bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Config prints every setting together with the layer that supplied it:
default, user file, project file, environment, or flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if example {
				fmt.Fprint(out, config.ExampleConfig())
				return nil
			}

			cws, err := config.LoadWithSources(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tVALUE\tSOURCE")
			for _, field := range config.Fields() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", field, cws.Config.Value(field), cws.Sources[field])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			files := cws.ConfigFiles()
			if len(files) == 0 {
				fmt.Fprintln(out, "\nNo config files found.")
				return nil
			}
			fmt.Fprintln(out, "\nConfig files:")
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&example, "example", false, "Print an example config file")

	return cmd
}
