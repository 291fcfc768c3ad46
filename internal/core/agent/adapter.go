// Package agent defines the Adapter abstraction for skilldock.
//
// An Adapter represents one AI coding tool (Claude Code, Cursor, Codex, ...).
// Each adapter knows its own paths, detection probes, and file formats, and
// renders the canonical model.AgentConfig / model.RuleSet into that tool's
// native files. Adapters are self-contained structs; the registry is built
// explicitly at process start and passed to the orchestrator, never looked
// up through package globals.
package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skilldock/skilldock/internal/core/model"
)

// Adapter defines how one AI coding tool integrates with skilldock.
type Adapter interface {
	// Identity
	Name() string        // machine name: "claude-code", "cursor"
	DisplayName() string // human name: "Claude Code", "Cursor"

	// Detection: globally installed on this machine. Side-effect free.
	IsInstalled() bool

	// Rendering. GenerateRulesConfig returns filename→content; single-file
	// agents return a one-entry map keyed by their rules file name.
	// GenerateMCPConfig reports ok=false when the agent has no MCP support.
	GenerateAgentFile(cfg model.AgentConfig) string
	GenerateRulesConfig(rules model.RuleSet) map[string]string
	GenerateMCPConfig(servers []model.MCPServer) (string, bool)

	// Pure path resolution, scope-aware. Global paths resolve under the
	// user's home profile; project paths resolve under projectDir.
	AgentFilePath(projectDir string, global bool) string
	RulesPath(projectDir string, global bool) string
	MCPConfigPath(projectDir string, global bool) string
	SkillsDir(projectDir string, global bool) string

	// Sync writes the agent file, rules, MCP config, and skill copies.
	// Every write is independently attempted; per-file failures land in
	// the result's Errors and never abort the remaining writes.
	Sync(projectDir string, cfg model.AgentConfig, rules *model.RuleSet, opts SyncOptions) model.SyncResult
}

// SyncOptions controls one Sync call.
type SyncOptions struct {
	Global bool
	Skills []model.Skill

	// SkipAgentFile suppresses the agent instructions file write. Several
	// adapters share AGENTS.md by convention; callers syncing more than one
	// of them set this after the first write so one run touches the shared
	// file once.
	SkipAgentFile bool
}

// Registry is an immutable set of adapters constructed once at process
// start. Keeping it explicit (rather than init-registered globals) lets
// tests inject fake adapters.
type Registry struct {
	adapters []Adapter
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// DefaultRegistry returns the registry of all built-in adapters.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewClaudeCode(),
		NewCursor(),
		NewCodex(),
		NewGeminiCLI(),
		NewGitHubCopilot(),
		NewOpenCode(),
		NewWindsurf(),
	)
}

// All returns the registered adapters in registration order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// ByName returns the adapter with the given machine name.
func (r *Registry) ByName(name string) (Adapter, bool) {
	for _, a := range r.adapters {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// ByNames resolves a list of adapter names, failing on any unknown name.
func (r *Registry) ByNames(names []string) ([]Adapter, error) {
	result := make([]Adapter, 0, len(names))
	for _, name := range names {
		a, ok := r.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown agent %q; available: %s",
				name, strings.Join(Names(r.adapters), ", "))
		}
		result = append(result, a)
	}
	return result, nil
}

// Detect returns all adapters whose tool is installed on this machine.
func (r *Registry) Detect() []Adapter {
	var detected []Adapter
	for _, a := range r.adapters {
		if a.IsInstalled() {
			detected = append(detected, a)
		}
	}
	return detected
}

// ProjectSkillsDirs returns the project-relative skills directory of every
// registered adapter, deduplicated and sorted. Discovery scans these as
// conventional skill locations.
func (r *Registry) ProjectSkillsDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, a := range r.adapters {
		dir := a.SkillsDir("", false)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Names returns the machine names of the given adapters.
func Names(adapters []Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	return names
}

// DisplayNames returns the display names of the given adapters.
func DisplayNames(adapters []Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.DisplayName()
	}
	return names
}
