package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/core"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter skilldock.yaml in the project directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetDir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		path, err := core.WriteStarterProjectFile(targetDir, force)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Created %s\n", path)
		fmt.Fprintln(os.Stdout, "Edit it, then run `skilldock sync`.")
		return nil
	},
}

func init() {
	initCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing skilldock.yaml")
	rootCmd.AddCommand(initCmd)
}
