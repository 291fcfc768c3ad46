package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/skilldock/skilldock/internal/core"
	"github.com/skilldock/skilldock/internal/core/model"
)

var skillsCmd = &cobra.Command{
	Use:   "skills [source]",
	Short: "List skills in a source, or skills installed in this project",
	Long: `With a source argument, list the skills discovered there without
installing anything. Without one, list the skills recorded in the project's
lock file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listInstalledSkills(cmd)
		}
		return listSourceSkills(cmd, args[0])
	},
}

func listSourceSkills(cmd *cobra.Command, sourceArg string) error {
	d := newDeps()

	source, err := core.ParseSource(sourceArg)
	if err != nil {
		return err
	}

	skills, checkout, err := d.orchestrator.DiscoverFromSource(source)
	if err != nil {
		if ce, ok := core.AsCloneError(err); ok {
			printCloneError(ce)
			os.Exit(1)
		}
		return err
	}
	if checkout != nil {
		defer checkout.Cleanup()
	}

	if len(skills) == 0 {
		fmt.Fprintln(os.Stdout, "No skills found.")
		return nil
	}

	preview, _ := cmd.Flags().GetBool("preview")
	for _, s := range skills {
		fmt.Fprintf(os.Stdout, "%s\n", s.Name)
		if s.Description != "" {
			fmt.Fprintf(os.Stdout, "  %s\n", s.Description)
		}
		if preview {
			printSkillPreview(s)
		}
	}
	return nil
}

// printSkillPreview renders the skill body as terminal markdown. Falls back
// to plain text when rendering fails.
func printSkillPreview(s model.Skill) {
	body, err := model.SkillBody(filepath.Join(s.SourcePath, model.SkillFileName))
	if err != nil || body == "" {
		return
	}

	out := body
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80)); err == nil {
		if rendered, err := r.Render(body); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(os.Stdout, out)
}

func listInstalledSkills(cmd *cobra.Command) error {
	targetDir, err := resolveTargetDir(cmd)
	if err != nil {
		return err
	}

	lf, err := core.LoadLockFile(targetDir)
	if err != nil {
		return err
	}
	if len(lf.Skills) == 0 {
		fmt.Fprintln(os.Stdout, "No skills installed.")
		return nil
	}

	for _, s := range lf.Skills {
		fmt.Fprintf(os.Stdout, "%s\n", s.Name)
		fmt.Fprintf(os.Stdout, "  source: %s\n", s.Source)
		if len(s.Agents) > 0 {
			fmt.Fprintf(os.Stdout, "  agents: %v\n", s.Agents)
		}
	}
	return nil
}

func init() {
	skillsCmd.Flags().StringP("dir", "d", "", "Project directory (default: current directory)")
	skillsCmd.Flags().Bool("preview", false, "Render each skill's markdown body")
	rootCmd.AddCommand(skillsCmd)
}
