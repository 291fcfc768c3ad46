package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skilldock/skilldock/internal/core/model"
)

// maxDiscoveryDepth bounds the recursive fallback walk.
const maxDiscoveryDepth = 5

// conventionalSkillDirs are scanned before falling back to a full walk.
var conventionalSkillDirs = []string{
	"skills",
	"skills/.curated",
	"skills/.experimental",
}

// Discoverer locates skill directories inside a fetched repository tree.
// agentSkillDirs extends the conventional search locations with every
// known agent-specific skills directory.
type Discoverer struct {
	agentSkillDirs []string
}

// NewDiscoverer creates a Discoverer. agentSkillDirs are project-relative
// directories (typically Registry.ProjectSkillsDirs()).
func NewDiscoverer(agentSkillDirs []string) *Discoverer {
	return &Discoverer{agentSkillDirs: agentSkillDirs}
}

// Discover finds skills under rootDir (or subPath within it). The search
// short-circuits at the first rule that yields results:
//
//  1. a SKILL.md directly in the search root makes it a single skill;
//  2. conventional directories are scanned for immediate subdirectories
//     containing SKILL.md;
//  3. a breadth-first walk bounded at depth 5 collects every directory
//     containing SKILL.md.
//
// Every returned skill's SourcePath is a descendant of rootDir; symlinks
// escaping the tree are rejected. Zero results is a normal outcome.
func (d *Discoverer) Discover(rootDir, subPath string) ([]model.Skill, error) {
	resolvedRoot, err := filepath.EvalSymlinks(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", rootDir, err)
	}

	searchPath := resolvedRoot
	if subPath != "" {
		searchPath = filepath.Join(resolvedRoot, subPath)
		if !d.contained(resolvedRoot, searchPath) {
			return nil, fmt.Errorf("subpath %q escapes the repository root", subPath)
		}
	}

	// Rule 1: the search root itself is a skill.
	if fileExists(filepath.Join(searchPath, model.SkillFileName)) {
		skill, err := model.LoadSkill(searchPath)
		if err == nil {
			return []model.Skill{*skill}, nil
		}
	}

	// Rule 2: conventional skill directories.
	if skills := d.scanConventionalDirs(resolvedRoot, searchPath); len(skills) > 0 {
		return skills, nil
	}

	// Rule 3: bounded breadth-first fallback walk.
	return d.walk(resolvedRoot, searchPath)
}

// scanConventionalDirs checks the fixed list of well-known skill locations
// for immediate subdirectories carrying a SKILL.md.
func (d *Discoverer) scanConventionalDirs(rootDir, searchPath string) []model.Skill {
	dirs := append([]string{}, conventionalSkillDirs...)
	dirs = append(dirs, d.agentSkillDirs...)

	var skills []model.Skill
	seen := make(map[string]bool)

	for _, rel := range dirs {
		dir := filepath.Join(searchPath, rel)
		if !d.contained(rootDir, dir) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			skillDir := filepath.Join(dir, entry.Name())
			if !d.contained(rootDir, skillDir) {
				continue
			}
			if !fileExists(filepath.Join(skillDir, model.SkillFileName)) {
				continue
			}
			if seen[skillDir] {
				continue
			}
			seen[skillDir] = true

			skill, err := model.LoadSkill(skillDir)
			if err != nil {
				continue
			}
			skills = append(skills, *skill)
		}
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].SourcePath < skills[j].SourcePath })
	return skills
}

// walk is an explicit-worklist breadth-first search. The worklist keeps
// depth per directory so the bound is externally verifiable, and the
// visited set is keyed on symlink-resolved paths for cycle safety.
func (d *Discoverer) walk(rootDir, searchPath string) ([]model.Skill, error) {
	type workItem struct {
		path  string
		depth int
	}

	var skills []model.Skill
	visited := make(map[string]bool)
	emitted := make(map[string]bool)

	queue := []workItem{{path: searchPath, depth: 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		resolved, err := filepath.EvalSymlinks(item.path)
		if err != nil {
			continue
		}
		if !d.contained(rootDir, resolved) {
			continue // symlink escaping the tree
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true

		if fileExists(filepath.Join(item.path, model.SkillFileName)) {
			if !emitted[resolved] {
				emitted[resolved] = true
				if skill, err := model.LoadSkill(item.path); err == nil {
					skills = append(skills, *skill)
				}
			}
			continue // skills do not nest
		}

		if item.depth >= maxDiscoveryDepth {
			continue
		}

		entries, err := os.ReadDir(item.path)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && entry.Type()&os.ModeSymlink == 0 {
				continue
			}
			name := entry.Name()
			if name == ".git" || name == "node_modules" || name == "vendor" {
				continue
			}
			queue = append(queue, workItem{path: filepath.Join(item.path, name), depth: item.depth + 1})
		}
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].SourcePath < skills[j].SourcePath })
	return skills, nil
}

// contained reports whether path resolves to a descendant of root (which
// must already be symlink-resolved).
func (d *Discoverer) contained(root, path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	if resolved == root {
		return true
	}
	return strings.HasPrefix(resolved, root+string(filepath.Separator))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
