package core

import (
	"fmt"
	"time"

	"github.com/skilldock/skilldock/internal/core/agent"
	"github.com/skilldock/skilldock/internal/core/model"
)

// Orchestrator drives discovery and per-agent sync. It owns no global
// state: the adapter registry is injected at construction.
type Orchestrator struct {
	registry   *agent.Registry
	discoverer *Discoverer
}

// NewOrchestrator creates an orchestrator over the given registry.
func NewOrchestrator(registry *agent.Registry) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		discoverer: NewDiscoverer(registry.ProjectSkillsDirs()),
	}
}

// Registry returns the adapter registry the orchestrator was built with.
func (o *Orchestrator) Registry() *agent.Registry { return o.registry }

// InstallOptions configures an InstallFromSource run.
type InstallOptions struct {
	ProjectDir string
	Global     bool

	// SkillNames filters discovered skills by display name; empty installs all.
	SkillNames []string

	// Agents are the sync targets. Required: the caller decides the
	// default (detected agents, or a user selection).
	Agents []agent.Adapter

	// Select, when set, is called between discovery and installation so
	// the CLI/TUI layer can narrow the discovered set. Returning an empty
	// slice cancels the installation without error.
	Select func(skills []model.Skill) ([]model.Skill, error)
}

// InstallOutcome reports a completed InstallFromSource run.
type InstallOutcome struct {
	Skills  []model.Skill      // skills that were installed
	Results []model.SyncResult // one per target agent
}

// DiscoverFromSource fetches the source and returns the discovered skills
// together with the checkout handle. The caller must Cleanup the returned
// checkout (it is nil for local sources) once the skills' SourcePaths are
// no longer needed.
func (o *Orchestrator) DiscoverFromSource(src *ParsedSource) ([]model.Skill, *Checkout, error) {
	if src.Type == SourceTypeLocal {
		skills, err := o.discoverer.Discover(src.LocalPath, src.SubPath)
		return skills, nil, err
	}

	checkout, err := Clone(src)
	if err != nil {
		return nil, nil, err
	}

	skills, err := o.discoverer.Discover(checkout.Dir, src.SubPath)
	if err != nil {
		checkout.Cleanup()
		return nil, nil, err
	}
	return skills, checkout, nil
}

// InstallFromSource fetches the source, discovers skills, applies the
// caller's selection, and copies the chosen skills into every target
// agent's skills directory. The temp checkout is released on every exit
// path. Zero discovered skills is a normal empty outcome, not an error.
func (o *Orchestrator) InstallFromSource(src *ParsedSource, opts InstallOptions) (*InstallOutcome, error) {
	if len(opts.Agents) == 0 {
		return nil, fmt.Errorf("no target agents")
	}

	skills, checkout, err := o.DiscoverFromSource(src)
	if err != nil {
		return nil, err
	}
	if checkout != nil {
		defer checkout.Cleanup()
	}

	if len(skills) == 0 {
		return &InstallOutcome{}, nil
	}

	if len(opts.SkillNames) > 0 {
		skills, err = filterSkillsByName(skills, opts.SkillNames)
		if err != nil {
			return nil, err
		}
	}

	if opts.Select != nil {
		skills, err = opts.Select(skills)
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			return &InstallOutcome{}, nil
		}
	}

	outcome := &InstallOutcome{Skills: skills}
	for _, a := range opts.Agents {
		res := a.Sync(opts.ProjectDir, model.AgentConfig{}, nil, agent.SyncOptions{
			Global: opts.Global,
			Skills: skills,
		})
		outcome.Results = append(outcome.Results, res)
	}

	if !opts.Global {
		o.recordInstalls(opts.ProjectDir, src, skills, opts.Agents)
	}

	return outcome, nil
}

// SyncProject renders the canonical config and rules into every target
// agent's native files. One adapter's failure never prevents the others;
// per-agent outcomes are returned for reporting. Adapters sharing an
// instructions file by convention (AGENTS.md) write it once per run: the
// rendered content is identical across them, so later adapters skip it.
func (o *Orchestrator) SyncProject(projectDir string, cfg model.AgentConfig, rules *model.RuleSet, global bool, agents []agent.Adapter) []model.SyncResult {
	results := make([]model.SyncResult, 0, len(agents))
	wroteAgentFile := make(map[string]bool)
	for _, a := range agents {
		opts := agent.SyncOptions{Global: global}
		path := a.AgentFilePath(projectDir, global)
		if wroteAgentFile[path] {
			opts.SkipAgentFile = true
		}
		wroteAgentFile[path] = true
		results = append(results, a.Sync(projectDir, cfg, rules, opts))
	}
	return results
}

// recordInstalls updates the project lock file. Lock bookkeeping is best
// effort; a failure here does not fail the install.
func (o *Orchestrator) recordInstalls(projectDir string, src *ParsedSource, skills []model.Skill, agents []agent.Adapter) {
	lf, err := LoadLockFile(projectDir)
	if err != nil {
		return
	}

	source := src.CloneURL
	if src.Type == SourceTypeLocal {
		source = src.LocalPath
	}

	now := time.Now().UTC()
	for _, s := range skills {
		lf.Upsert(LockedSkill{
			Name:        s.Name,
			Source:      source,
			Agents:      agent.Names(agents),
			InstalledAt: now,
		})
	}
	_ = lf.Save(projectDir)
}

// filterSkillsByName keeps skills whose name matches one of names,
// failing when a requested name matches nothing.
func filterSkillsByName(skills []model.Skill, names []string) ([]model.Skill, error) {
	byName := make(map[string]model.Skill, len(skills))
	for _, s := range skills {
		byName[s.Name] = s
	}

	var out []model.Skill
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			available := make([]string, len(skills))
			for i, sk := range skills {
				available[i] = sk.Name
			}
			return nil, fmt.Errorf("skill %q not found; available: %v", name, available)
		}
		out = append(out, s)
	}
	return out, nil
}
