package agent

// Windsurf is the adapter for the Windsurf editor.
type Windsurf struct {
	BaseAdapter
}

// NewWindsurf creates a configured Windsurf adapter.
func NewWindsurf() *Windsurf {
	return &Windsurf{BaseAdapter{
		name:        "windsurf",
		displayName: "Windsurf",
		agentFile:   ".windsurfrules",
		rulesPath:   ".windsurf/rules.md",
		skillsDir:   ".windsurf/skills",
		globalDir:   "~/.codeium/windsurf",
		detectPaths: []string{"~/.codeium"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPNone,
	}}
}
