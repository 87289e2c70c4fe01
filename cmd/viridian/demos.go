package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viridian-dev/viridian/internal/demo"
)

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range demo.Names() {
				app, _ := demo.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", app.Name, faint(app.Description))
			}
		},
	}
}
