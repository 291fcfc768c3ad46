package agent

// GeminiCLI is the adapter for the Gemini CLI.
type GeminiCLI struct {
	BaseAdapter
}

// NewGeminiCLI creates a configured Gemini CLI adapter.
func NewGeminiCLI() *GeminiCLI {
	return &GeminiCLI{BaseAdapter{
		name:        "gemini-cli",
		displayName: "Gemini CLI",
		agentFile:   "GEMINI.md",
		rulesPath:   ".gemini/rules.md",
		skillsDir:   ".gemini/skills",
		globalDir:   "~/.gemini",
		detectPaths: []string{"~/.gemini"},
		rulesFormat: RulesMarkdown,
		mcpStyle:    MCPStandard,
		mcpPath:     ".gemini/settings.json",
		mcpKey:      "mcpServers",
	}}
}
