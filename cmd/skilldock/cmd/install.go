package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/core"
	"github.com/skilldock/skilldock/internal/core/agent"
	"github.com/skilldock/skilldock/internal/core/model"
	"github.com/skilldock/skilldock/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install skill(s) from a source",
	Long: `Install skill(s) from a git repository, GitHub shorthand, or local path.

Sources can be:
  owner/repo              GitHub shorthand
  ./local/path            Local directory
  https://github.com/...  Full URL (tree URLs select a branch and subfolder)
  git@host:owner/repo.git SSH clone URL

Skills are copied into the skills directory of each target agent. Targets
default to the agents detected on this machine; override with --agents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := newDeps()

		source, err := core.ParseSource(args[0])
		if err != nil {
			return err
		}

		targetDir, err := resolveTargetDir(cmd)
		if err != nil {
			return err
		}

		global, _ := cmd.Flags().GetBool("global")
		pick, _ := cmd.Flags().GetBool("pick")
		skillFlag, _ := cmd.Flags().GetString("skill")

		agents, err := resolveTargetAgents(cmd, d.registry, !pick)
		if err != nil {
			return err
		}

		opts := core.InstallOptions{
			ProjectDir: targetDir,
			Global:     global,
			Agents:     agents,
		}
		if skillFlag != "" {
			names := strings.Split(skillFlag, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}
			opts.SkillNames = names
		}
		if pick {
			opts.Select = pickSkills
			if len(opts.Agents) == 0 {
				opts.Agents = d.registry.All()
			}
			opts.Agents, err = pickAgents(opts.Agents)
			if err != nil {
				return err
			}
			if len(opts.Agents) == 0 {
				return nil
			}
		}

		outcome, err := d.orchestrator.InstallFromSource(source, opts)
		if err != nil {
			if ce, ok := core.AsCloneError(err); ok {
				printCloneError(ce)
				os.Exit(1)
			}
			return err
		}

		if len(outcome.Skills) == 0 {
			fmt.Fprintln(os.Stdout, "No skills installed.")
			return nil
		}

		for _, s := range outcome.Skills {
			fmt.Fprintf(os.Stdout, "Installed: %s\n", s.Name)
			if s.Description != "" {
				fmt.Fprintf(os.Stdout, "  %s\n", s.Description)
			}
		}
		return printSyncResults(d.registry, outcome.Results)
	},
}

// pickSkills narrows discovered skills through the interactive picker.
func pickSkills(skills []model.Skill) ([]model.Skill, error) {
	items := make([]tui.PickItem, len(skills))
	for i, s := range skills {
		body, _ := model.SkillBody(filepath.Join(s.SourcePath, model.SkillFileName))
		items[i] = tui.PickItem{
			Label:   s.Name,
			Detail:  s.Description,
			Body:    body,
			Checked: true,
		}
	}

	indexes, err := tui.RunPicker("Select skills to install", items)
	if err != nil {
		if err == tui.ErrCancelled {
			return nil, nil
		}
		return nil, err
	}

	out := make([]model.Skill, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, skills[i])
	}
	return out, nil
}

// pickAgents narrows the target agents through the interactive picker.
// Detected agents start checked.
func pickAgents(candidates []agent.Adapter) ([]agent.Adapter, error) {
	items := make([]tui.PickItem, len(candidates))
	for i, a := range candidates {
		detail := ""
		if a.IsInstalled() {
			detail = "detected"
		}
		items[i] = tui.PickItem{
			Label:   a.DisplayName(),
			Detail:  detail,
			Checked: a.IsInstalled(),
		}
	}

	indexes, err := tui.RunPicker("Select target agents", items)
	if err != nil {
		if err == tui.ErrCancelled {
			return nil, nil
		}
		return nil, err
	}

	out := make([]agent.Adapter, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, candidates[i])
	}
	return out, nil
}

func init() {
	installCmd.Flags().StringP("dir", "d", "", "Target directory (default: current directory)")
	installCmd.Flags().StringP("skill", "s", "", "Comma-separated skill names to install (default: all)")
	installCmd.Flags().BoolP("global", "g", false, "Install into the agents' global (home) directories")
	installCmd.Flags().Bool("pick", false, "Interactively pick skills and agents")
	addAgentsFlag(installCmd)
	rootCmd.AddCommand(installCmd)
}
