// Package model defines the canonical, agent-agnostic data model for
// skilldock: skills discovered in repositories, the project configuration
// that adapters render into native agent files, and the per-agent sync
// outcome. It has no dependencies on discovery, adapters, or the CLI.
package model

import "fmt"

// Skill is a self-contained instructional bundle rooted at a directory
// containing a SKILL.md manifest. SourcePath is absolute and always points
// inside the tree it was discovered in; it becomes invalid once the
// enclosing checkout is cleaned up.
type Skill struct {
	Name        string
	Description string
	SourcePath  string
	Frontmatter map[string]string
}

// AgentConfig is the canonical project configuration that each adapter
// renders into its agent's native instructions file.
type AgentConfig struct {
	ProjectName       string      `yaml:"project,omitempty"`
	Description       string      `yaml:"description,omitempty"`
	Languages         []string    `yaml:"languages,omitempty"`
	Frameworks        []string    `yaml:"frameworks,omitempty"`
	TechStack         []string    `yaml:"techStack,omitempty"`
	DevCommands       []string    `yaml:"devCommands,omitempty"`
	BuildCommands     []string    `yaml:"buildCommands,omitempty"`
	TestCommands      []string    `yaml:"testCommands,omitempty"`
	CodingGuidelines  []string    `yaml:"guidelines,omitempty"`
	ArchitectureNotes []string    `yaml:"architecture,omitempty"`
	MCPServers        []MCPServer `yaml:"mcpServers,omitempty"`
}

// IsZero reports whether the config carries no content at all.
// Adapters skip writing an agent file for a zero config (skill-only installs).
func (c AgentConfig) IsZero() bool {
	return c.ProjectName == "" && c.Description == "" &&
		len(c.Languages) == 0 && len(c.Frameworks) == 0 &&
		len(c.TechStack) == 0 && len(c.DevCommands) == 0 &&
		len(c.BuildCommands) == 0 && len(c.TestCommands) == 0 &&
		len(c.CodingGuidelines) == 0 && len(c.ArchitectureNotes) == 0 &&
		len(c.MCPServers) == 0
}

// MCPServerType discriminates the two MCP server shapes.
type MCPServerType string

const (
	// MCPServerCommand is a local stdio server launched as a subprocess.
	MCPServerCommand MCPServerType = "command"
	// MCPServerHTTP is a remote server reached over HTTP or SSE.
	MCPServerHTTP MCPServerType = "http"
)

// MCPServer describes one Model Context Protocol server. Exactly one of the
// command shape (Command/Args/Env) or the http shape (URL/Headers) is valid
// per instance.
type MCPServer struct {
	Name string `yaml:"name"`
	Type MCPServerType `yaml:"type,omitempty"`

	// Command shape.
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`

	// HTTP shape.
	URL       string            `yaml:"url,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Transport string            `yaml:"transport,omitempty"` // "http" (default) or "sse"
}

// Validate checks the discriminated-union invariant and infers Type when
// it was omitted in config files.
func (s *MCPServer) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("mcp server missing name")
	}
	hasCommand := s.Command != ""
	hasURL := s.URL != ""
	switch {
	case hasCommand && hasURL:
		return fmt.Errorf("mcp server %q: command and url are mutually exclusive", s.Name)
	case !hasCommand && !hasURL:
		return fmt.Errorf("mcp server %q: needs either command or url", s.Name)
	case hasCommand:
		if s.Type == "" {
			s.Type = MCPServerCommand
		}
		if s.Type != MCPServerCommand {
			return fmt.Errorf("mcp server %q: type %q does not match command shape", s.Name, s.Type)
		}
	default:
		if s.Type == "" {
			s.Type = MCPServerHTTP
		}
		if s.Type != MCPServerHTTP {
			return fmt.Errorf("mcp server %q: type %q does not match url shape", s.Name, s.Type)
		}
	}
	return nil
}

// RuleSet holds coding rules: global ones plus rules scoped to glob patterns.
type RuleSet struct {
	Global       []string   `yaml:"global,omitempty"`
	PathSpecific []PathRule `yaml:"paths,omitempty"`
}

// PathRule scopes a list of rules to files matching a glob pattern.
type PathRule struct {
	Pattern string   `yaml:"pattern"`
	Rules   []string `yaml:"rules"`
}

// IsEmpty reports whether the rule set contains no rules at all.
func (r RuleSet) IsEmpty() bool {
	return len(r.Global) == 0 && len(r.PathSpecific) == 0
}

// SyncResult is the per-adapter outcome of one sync call. It is append-only
// while the sync runs and finalized before being returned.
type SyncResult struct {
	AgentID      string
	Success      bool
	FilesCreated []string
	FilesUpdated []string
	Errors       []string
}

// RecordWrite classifies a successful write as create or update based on
// whether the destination existed before the write.
func (r *SyncResult) RecordWrite(path string, existed bool) {
	if existed {
		r.FilesUpdated = append(r.FilesUpdated, path)
	} else {
		r.FilesCreated = append(r.FilesCreated, path)
	}
}

// RecordError collects a non-fatal per-file failure. The sync continues.
func (r *SyncResult) RecordError(err error) {
	r.Errors = append(r.Errors, err.Error())
}

// Finalize sets Success from the collected errors and returns the result.
func (r *SyncResult) Finalize() SyncResult {
	r.Success = len(r.Errors) == 0
	return *r
}
