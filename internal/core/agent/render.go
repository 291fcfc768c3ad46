package agent

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skilldock/skilldock/internal/core/model"
)

// techGuidance holds short per-technology guidance emitted in the agent
// file when the project declares a known language or framework.
var techGuidance = map[string]string{
	"go":         "Run gofmt on generated code and prefer returning errors over panics.",
	"typescript": "Use strict typing; avoid `any` unless interacting with untyped libraries.",
	"javascript": "Prefer modern ES modules and async/await over callback style.",
	"python":     "Follow PEP 8 and include type hints on public functions.",
	"react":      "Prefer function components and hooks; keep components small.",
	"rust":       "Prefer idiomatic error handling with Result; avoid unwrap in library code.",
}

// GenerateAgentFile renders the canonical config as the agent's primary
// markdown instructions file. Sections appear only when their source lists
// are non-empty, in a fixed order: overview, tech stack, tech-specific
// guidance, commands, architecture, guidelines, MCP list.
func (b *BaseAdapter) GenerateAgentFile(cfg model.AgentConfig) string {
	var sb strings.Builder

	title := cfg.ProjectName
	if title == "" {
		title = "Project Guidelines"
	}
	fmt.Fprintf(&sb, "# %s\n", title)
	if cfg.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", cfg.Description)
	}

	if len(cfg.Languages) > 0 || len(cfg.Frameworks) > 0 || len(cfg.TechStack) > 0 {
		sb.WriteString("\n## Tech Stack\n\n")
		writeBullets(&sb, "Languages", cfg.Languages)
		writeBullets(&sb, "Frameworks", cfg.Frameworks)
		writeBullets(&sb, "Tools", cfg.TechStack)
	}

	if guidance := collectGuidance(cfg); len(guidance) > 0 {
		sb.WriteString("\n## Technology Notes\n\n")
		for _, g := range guidance {
			fmt.Fprintf(&sb, "- %s\n", g)
		}
	}

	if len(cfg.DevCommands) > 0 || len(cfg.BuildCommands) > 0 || len(cfg.TestCommands) > 0 {
		sb.WriteString("\n## Commands\n\n")
		writeCommandList(&sb, "Development", cfg.DevCommands)
		writeCommandList(&sb, "Build", cfg.BuildCommands)
		writeCommandList(&sb, "Test", cfg.TestCommands)
	}

	if len(cfg.ArchitectureNotes) > 0 {
		sb.WriteString("\n## Architecture\n\n")
		for _, note := range cfg.ArchitectureNotes {
			fmt.Fprintf(&sb, "- %s\n", note)
		}
	}

	if len(cfg.CodingGuidelines) > 0 {
		sb.WriteString("\n## Coding Guidelines\n\n")
		for _, g := range cfg.CodingGuidelines {
			fmt.Fprintf(&sb, "- %s\n", g)
		}
	}

	if len(cfg.MCPServers) > 0 {
		sb.WriteString("\n## MCP Servers\n\n")
		for _, s := range cfg.MCPServers {
			if s.Command != "" {
				fmt.Fprintf(&sb, "- `%s` (command: `%s`)\n", s.Name, s.Command)
			} else {
				fmt.Fprintf(&sb, "- `%s` (url: %s)\n", s.Name, s.URL)
			}
		}
	}

	return sb.String()
}

func writeBullets(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "- %s: %s\n", label, strings.Join(items, ", "))
}

func writeCommandList(sb *strings.Builder, label string, cmds []string) {
	if len(cmds) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", label)
	for _, c := range cmds {
		fmt.Fprintf(sb, "- `%s`\n", c)
	}
	sb.WriteString("\n")
}

func collectGuidance(cfg model.AgentConfig) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tech := range append(append([]string{}, cfg.Languages...), cfg.Frameworks...) {
		key := strings.ToLower(tech)
		if g, ok := techGuidance[key]; ok && !seen[key] {
			seen[key] = true
			out = append(out, g)
		}
	}
	return out
}

// GenerateRulesConfig renders the rule set as filename→content. Markdown
// adapters return a single entry keyed by their rules file name; .mdc
// adapters return one file per glob pattern plus a general file for
// global rules.
func (b *BaseAdapter) GenerateRulesConfig(rules model.RuleSet) map[string]string {
	if b.rulesFormat == RulesMDC {
		return renderMDCRules(rules)
	}
	name := "rules.md"
	if b.rulesPath != "" {
		name = baseName(b.rulesPath)
	}
	return map[string]string{name: renderMarkdownRules(rules)}
}

func renderMarkdownRules(rules model.RuleSet) string {
	var sb strings.Builder
	sb.WriteString("# Rules\n")

	if len(rules.Global) > 0 {
		sb.WriteString("\n")
		for _, r := range rules.Global {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}

	for _, pr := range rules.PathSpecific {
		fmt.Fprintf(&sb, "\n## Files matching `%s`\n\n", pr.Pattern)
		for _, r := range pr.Rules {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}

	return sb.String()
}

// mdcFrontmatter is the YAML header of a .mdc rule file.
type mdcFrontmatter struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs,omitempty"`
}

func renderMDCRules(rules model.RuleSet) map[string]string {
	out := make(map[string]string)

	if len(rules.Global) > 0 {
		out["general.mdc"] = renderMDCFile(mdcFrontmatter{
			Description: "General project rules",
		}, rules.Global)
	}

	for _, pr := range rules.PathSpecific {
		name := model.SanitizeName(pr.Pattern) + ".mdc"
		out[name] = renderMDCFile(mdcFrontmatter{
			Description: fmt.Sprintf("Rules for %s", pr.Pattern),
			Globs:       pr.Pattern,
		}, pr.Rules)
	}

	return out
}

func renderMDCFile(fm mdcFrontmatter, rules []string) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	header, _ := yaml.Marshal(fm)
	sb.Write(header)
	sb.WriteString("---\n\n")
	for _, r := range rules {
		fmt.Fprintf(&sb, "- %s\n", r)
	}
	return sb.String()
}
