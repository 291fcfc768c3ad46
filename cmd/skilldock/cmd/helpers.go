package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/core"
	"github.com/skilldock/skilldock/internal/core/agent"
	"github.com/skilldock/skilldock/internal/core/model"
)

// resolveTargetDir resolves the --dir flag or falls back to cwd.
func resolveTargetDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// resolveTargetAgents parses the --agents flag. With the flag empty it falls
// back to the agents detected on this machine; requireSome turns an empty
// detection into an error with a hint.
func resolveTargetAgents(cmd *cobra.Command, registry *agent.Registry, requireSome bool) ([]agent.Adapter, error) {
	flag, _ := cmd.Flags().GetString("agents")
	if flag != "" {
		names := strings.Split(flag, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		return registry.ByNames(names)
	}

	detected := registry.Detect()
	if len(detected) == 0 && requireSome {
		return nil, fmt.Errorf("no AI agents detected on this machine; pass --agents (available: %s)",
			strings.Join(agent.Names(registry.All()), ", "))
	}
	return detected, nil
}

// addAgentsFlag adds the shared --agents flag to a command.
func addAgentsFlag(cmd *cobra.Command) {
	cmd.Flags().String("agents", "", "Comma-separated agent names (e.g. cursor,claude-code)")
}

// printSyncResults reports per-agent outcomes. Returns an error when any
// agent failed so the command exits non-zero after printing everything.
func printSyncResults(registry *agent.Registry, results []model.SyncResult) error {
	failed := 0
	for _, res := range results {
		name := res.AgentID
		if a, ok := registry.ByName(res.AgentID); ok {
			name = a.DisplayName()
		}

		if res.Success {
			fmt.Fprintf(os.Stdout, "%s: ok\n", name)
		} else {
			failed++
			fmt.Fprintf(os.Stdout, "%s: %d error(s)\n", name, len(res.Errors))
		}
		for _, p := range res.FilesCreated {
			fmt.Fprintf(os.Stdout, "  created %s\n", p)
		}
		for _, p := range res.FilesUpdated {
			fmt.Fprintf(os.Stdout, "  updated %s\n", p)
		}
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stdout, "  error: %s\n", e)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d agent(s) had errors", failed)
	}
	return nil
}

// printCloneError renders a classified clone failure with its hints.
func printCloneError(ce *core.CloneError) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", ce)
	if ce.Command != "" {
		fmt.Fprintf(os.Stderr, "  ran: %s\n", ce.Command)
	}
	for _, hint := range ce.Hints {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
	}
}
