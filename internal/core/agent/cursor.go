package agent

// Cursor is the adapter for the Cursor editor. Rules are split into one
// .mdc file per glob pattern under .cursor/rules/, and the MCP config is
// JSONC so user comments survive rewrites.
type Cursor struct {
	BaseAdapter
}

// NewCursor creates a configured Cursor adapter.
func NewCursor() *Cursor {
	return &Cursor{BaseAdapter{
		name:        "cursor",
		displayName: "Cursor",
		agentFile:   "AGENTS.md",
		rulesPath:   ".cursor/rules",
		skillsDir:   ".cursor/skills",
		globalDir:   "~/.cursor",
		detectPaths: []string{"~/.cursor"},
		rulesFormat: RulesMDC,
		mcpStyle:    MCPStandard,
		mcpPath:     ".cursor/mcp.json",
		mcpKey:      "mcpServers",
		mcpJSONC:    true,
	}}
}
