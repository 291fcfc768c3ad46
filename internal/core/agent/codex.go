package agent

// Codex is the adapter for OpenAI Codex. Codex reads AGENTS.md and has no
// project-level MCP manifest, so MCP generation is a no-op.
type Codex struct {
	BaseAdapter
}

// NewCodex creates a configured Codex adapter.
func NewCodex() *Codex {
	return &Codex{BaseAdapter{
		name:        "codex",
		displayName: "Codex",
		agentFile:   "AGENTS.md",
		rulesPath:   ".codex/rules.md",
		skillsDir:   ".codex/skills",
		globalDir:   "~/.codex",
		detectPaths: []string{"~/.codex", "$CODEX_HOME"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPNone,
	}}
}
