package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skilldock/skilldock/internal/core/model"
)

// ProjectFileName is the canonical project configuration file read by
// `skilldock sync`.
const ProjectFileName = "skilldock.yaml"

// projectFile is the on-disk YAML layout of skilldock.yaml: the canonical
// agent config plus the rule set.
type projectFile struct {
	Project     string   `yaml:"project,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Languages   []string `yaml:"languages,omitempty"`
	Frameworks  []string `yaml:"frameworks,omitempty"`
	TechStack   []string `yaml:"techStack,omitempty"`

	Commands struct {
		Dev   []string `yaml:"dev,omitempty"`
		Build []string `yaml:"build,omitempty"`
		Test  []string `yaml:"test,omitempty"`
	} `yaml:"commands,omitempty"`

	Guidelines   []string          `yaml:"guidelines,omitempty"`
	Architecture []string          `yaml:"architecture,omitempty"`
	MCPServers   []model.MCPServer `yaml:"mcpServers,omitempty"`
	Rules        model.RuleSet     `yaml:"rules,omitempty"`
}

// LoadProjectFile reads skilldock.yaml from projectDir and returns the
// canonical config and rule set. MCP servers are validated here so a
// malformed entry fails before any filesystem mutation.
func LoadProjectFile(projectDir string) (*model.AgentConfig, *model.RuleSet, error) {
	path := filepath.Join(projectDir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("no %s found in %s (run `skilldock init`)", ProjectFileName, projectDir)
		}
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range pf.MCPServers {
		if err := pf.MCPServers[i].Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := &model.AgentConfig{
		ProjectName:       pf.Project,
		Description:       pf.Description,
		Languages:         pf.Languages,
		Frameworks:        pf.Frameworks,
		TechStack:         pf.TechStack,
		DevCommands:       pf.Commands.Dev,
		BuildCommands:     pf.Commands.Build,
		TestCommands:      pf.Commands.Test,
		CodingGuidelines:  pf.Guidelines,
		ArchitectureNotes: pf.Architecture,
		MCPServers:        pf.MCPServers,
	}

	rules := pf.Rules
	return cfg, &rules, nil
}

// starterProjectFile is written by `skilldock init`.
const starterProjectFile = `# skilldock project configuration.
# Run ` + "`skilldock sync`" + ` to render this into each agent's native files.
project: my-project
description: Describe the project in one or two sentences.

languages: []
frameworks: []
techStack: []

commands:
  dev: []
  build: []
  test: []

guidelines: []
architecture: []

# mcpServers:
#   - name: docs
#     command: npx
#     args: ["-y", "@example/mcp-docs"]
#   - name: search
#     url: https://example.com/mcp

rules:
  global: []
  paths: []
`

// WriteStarterProjectFile writes a starter skilldock.yaml. It refuses to
// overwrite an existing file unless force is set.
func WriteStarterProjectFile(projectDir string, force bool) (string, error) {
	path := filepath.Join(projectDir, ProjectFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(starterProjectFile), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
