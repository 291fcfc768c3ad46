package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/skilldock/skilldock/internal/core/model"
)

// RulesFormat selects how an adapter materializes a RuleSet on disk.
type RulesFormat int

const (
	// RulesMarkdown writes a single markdown file with bullet lists.
	RulesMarkdown RulesFormat = iota
	// RulesMDC writes one .mdc file per glob pattern (Cursor style),
	// each with YAML frontmatter followed by a bullet list.
	RulesMDC
)

// MCPStyle selects how an adapter materializes MCP server entries.
type MCPStyle int

const (
	// MCPNone means the agent has no MCP support; generation is a no-op.
	MCPNone MCPStyle = iota
	// MCPStandard writes a {"mcpServers": {...}} manifest, merging into
	// an existing file via JSONC-preserving patches.
	MCPStandard
	// MCPSettingsKey merges entries into an existing settings file under
	// the adapter's key using targeted JSON edits (OpenCode style).
	MCPSettingsKey
)

// BaseAdapter implements the Adapter contract from a static description of
// one tool's layout. Individual adapters are thin constructors around it;
// behavior differences are expressed through the format tags, keeping the
// set of on-disk shapes closed.
type BaseAdapter struct {
	name        string
	displayName string

	agentFile string // project-relative instructions file
	rulesPath string // project-relative rules file (or dir for RulesMDC)
	skillsDir string // project-relative skills directory
	globalDir string // global root, e.g. "~/.claude" (supports ~ and $VAR)

	detectPaths []string // dirs probed by IsInstalled

	rulesFormat RulesFormat
	mcpStyle    MCPStyle
	mcpPath     string // project-relative MCP config file
	mcpKey      string // top-level key holding server entries
	mcpJSONC    bool   // keep comments/trailing commas when rewriting
}

func (b *BaseAdapter) Name() string        { return b.name }
func (b *BaseAdapter) DisplayName() string { return b.displayName }

// IsInstalled probes the tool's global config directories.
func (b *BaseAdapter) IsInstalled() bool {
	for _, p := range b.detectPaths {
		if dirExists(expandPath(p)) {
			return true
		}
	}
	return false
}

// scopeJoin resolves a project-relative path for the requested scope.
// Global scope flattens the path under the adapter's global root.
func (b *BaseAdapter) scopeJoin(projectDir string, global bool, rel string) string {
	if rel == "" {
		return ""
	}
	if global {
		return filepath.Join(expandPath(b.globalDir), filepath.Base(rel))
	}
	return filepath.Join(projectDir, rel)
}

func (b *BaseAdapter) AgentFilePath(projectDir string, global bool) string {
	return b.scopeJoin(projectDir, global, b.agentFile)
}

func (b *BaseAdapter) RulesPath(projectDir string, global bool) string {
	return b.scopeJoin(projectDir, global, b.rulesPath)
}

func (b *BaseAdapter) MCPConfigPath(projectDir string, global bool) string {
	if b.mcpStyle == MCPNone {
		return ""
	}
	return b.scopeJoin(projectDir, global, b.mcpPath)
}

func (b *BaseAdapter) SkillsDir(projectDir string, global bool) string {
	return b.scopeJoin(projectDir, global, b.skillsDir)
}

// Sync writes, in order: agent file, rules, MCP config, skill copies.
// A zero config skips the agent file (skill-only installs). Each write is
// attempted independently; failures accumulate in the result.
func (b *BaseAdapter) Sync(projectDir string, cfg model.AgentConfig, rules *model.RuleSet, opts SyncOptions) model.SyncResult {
	res := model.SyncResult{AgentID: b.name}

	if !cfg.IsZero() && !opts.SkipAgentFile {
		b.writeFile(&res, b.AgentFilePath(projectDir, opts.Global), b.GenerateAgentFile(cfg))
	}

	if rules != nil && !rules.IsEmpty() {
		b.writeRules(&res, projectDir, opts.Global, *rules)
	}

	if len(cfg.MCPServers) > 0 && b.mcpStyle != MCPNone {
		b.writeMCP(&res, projectDir, opts.Global, cfg.MCPServers)
	}

	for _, skill := range opts.Skills {
		b.installSkill(&res, projectDir, opts.Global, skill)
	}

	return res.Finalize()
}

// writeRules materializes the rule set according to the adapter's format.
func (b *BaseAdapter) writeRules(res *model.SyncResult, projectDir string, global bool, rules model.RuleSet) {
	out := b.GenerateRulesConfig(rules)

	if b.rulesFormat == RulesMDC {
		dir := b.RulesPath(projectDir, global)
		names := make([]string, 0, len(out))
		for name := range out {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.writeFile(res, filepath.Join(dir, name), out[name])
		}
		return
	}

	path := b.RulesPath(projectDir, global)
	for _, content := range out {
		b.writeFile(res, path, content)
	}
}

// writeFile performs one independent write, classifying create vs update
// from a pre-write existence check.
func (b *BaseAdapter) writeFile(res *model.SyncResult, path, content string) {
	existed := pathExists(path)
	if err := writeFileAtomic(path, content); err != nil {
		res.RecordError(fmt.Errorf("%s: %w", path, err))
		return
	}
	res.RecordWrite(path, existed)
}

// installSkill copies a skill directory tree into this adapter's skills
// directory. Reinstall is a full overwrite of that skill's folder only.
func (b *BaseAdapter) installSkill(res *model.SyncResult, projectDir string, global bool, skill model.Skill) {
	dest := filepath.Join(b.SkillsDir(projectDir, global), model.SanitizeName(skill.Name))
	existed := pathExists(dest)

	if err := os.RemoveAll(dest); err != nil {
		res.RecordError(fmt.Errorf("cleaning %s: %w", dest, err))
		return
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		res.RecordError(fmt.Errorf("creating %s: %w", dest, err))
		return
	}
	if err := copySkillDir(skill.SourcePath, dest); err != nil {
		res.RecordError(fmt.Errorf("copying skill %q: %w", skill.Name, err))
		return
	}
	res.RecordWrite(dest, existed)
}
