package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and whether they are detected",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()

		for _, a := range d.registry.All() {
			marker := " "
			if a.IsInstalled() {
				marker = "*"
			}
			fmt.Fprintf(os.Stdout, "%s %-16s %s\n", marker, a.Name(), a.DisplayName())
		}
		fmt.Fprintln(os.Stdout, "\n* = detected on this machine")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}
