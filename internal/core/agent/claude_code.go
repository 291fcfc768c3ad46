package agent

// ClaudeCode is the adapter for Claude Code.
type ClaudeCode struct {
	BaseAdapter
}

// NewClaudeCode creates a configured Claude Code adapter.
func NewClaudeCode() *ClaudeCode {
	return &ClaudeCode{BaseAdapter{
		name:        "claude-code",
		displayName: "Claude Code",
		agentFile:   "CLAUDE.md",
		rulesPath:   ".claude/rules.md",
		skillsDir:   ".claude/skills",
		globalDir:   "~/.claude",
		detectPaths: []string{"~/.claude"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPStandard,
		mcpPath:     ".mcp.json",
		mcpKey:      "mcpServers",
	}}
}
