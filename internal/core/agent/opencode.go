package agent

// OpenCode is the adapter for OpenCode. MCP servers live inside the main
// opencode.json settings file under the "mcp" key, so entries are merged
// with targeted edits instead of rewriting the whole file.
type OpenCode struct {
	BaseAdapter
}

// NewOpenCode creates a configured OpenCode adapter.
func NewOpenCode() *OpenCode {
	return &OpenCode{BaseAdapter{
		name:        "opencode",
		displayName: "OpenCode",
		agentFile:   "AGENTS.md",
		rulesPath:   ".opencode/rules.md",
		skillsDir:   ".opencode/skills",
		globalDir:   "$XDG_CONFIG/opencode",
		detectPaths: []string{"$XDG_CONFIG/opencode", "~/.config/opencode"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPSettingsKey,
		mcpPath:     "opencode.json",
		mcpKey:      "mcp",
	}}
}
