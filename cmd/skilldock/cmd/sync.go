package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/core"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Render skilldock.yaml into each agent's native files",
	Long: `Sync reads skilldock.yaml from the project directory and writes each
target agent's instruction file, rules file(s), and MCP config.

Existing MCP config files are merged entry by entry; servers added by hand
and comments in JSONC files survive a sync.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()

		targetDir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		cfg, rules, err := core.LoadProjectFile(targetDir)
		if err != nil {
			return err
		}

		agents, err := resolveTargetAgents(cmd, d.registry, true)
		if err != nil {
			return err
		}

		global, _ := cmd.Flags().GetBool("global")
		results := d.orchestrator.SyncProject(targetDir, *cfg, rules, global, agents)
		return printSyncResults(d.registry, results)
	},
}

func init() {
	syncCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	syncCmd.Flags().BoolP("global", "g", false, "Write into the agents' global (home) directories")
	addAgentsFlag(syncCmd)
	rootCmd.AddCommand(syncCmd)
}
