package agent

// GitHubCopilot is the adapter for GitHub Copilot. Copilot has no MCP
// manifest skilldock manages, so MCP generation is a no-op.
type GitHubCopilot struct {
	BaseAdapter
}

// NewGitHubCopilot creates a configured GitHub Copilot adapter.
func NewGitHubCopilot() *GitHubCopilot {
	return &GitHubCopilot{BaseAdapter{
		name:        "github-copilot",
		displayName: "GitHub Copilot",
		agentFile:   ".github/copilot-instructions.md",
		rulesPath:   ".github/instructions/rules.instructions.md",
		skillsDir:   ".github/skills",
		globalDir:   "~/.copilot",
		detectPaths: []string{"~/.copilot"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPNone,
	}}
}
