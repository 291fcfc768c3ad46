package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skilldock/skilldock/internal/core/model"
)

func testConfig() model.AgentConfig {
	return model.AgentConfig{
		ProjectName: "demo",
		Description: "A demo project.",
		Languages:   []string{"Go"},
	}
}

func testRules() *model.RuleSet {
	return &model.RuleSet{
		Global: []string{"Keep functions small"},
		PathSpecific: []model.PathRule{
			{Pattern: "*.sql", Rules: []string{"Use parameterized queries"}},
		},
	}
}

func containsPath(paths []string, suffix string) bool {
	for _, p := range paths {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

func TestSyncCreateThenUpdate(t *testing.T) {
	dir := t.TempDir()
	a := NewClaudeCode()

	first := a.Sync(dir, testConfig(), testRules(), SyncOptions{})
	if !first.Success {
		t.Fatalf("first sync failed: %v", first.Errors)
	}
	if !containsPath(first.FilesCreated, "CLAUDE.md") {
		t.Errorf("FilesCreated = %v, want CLAUDE.md", first.FilesCreated)
	}
	if len(first.FilesUpdated) != 0 {
		t.Errorf("FilesUpdated = %v, want none on a fresh project", first.FilesUpdated)
	}

	second := a.Sync(dir, testConfig(), testRules(), SyncOptions{})
	if !second.Success {
		t.Fatalf("second sync failed: %v", second.Errors)
	}
	if len(second.FilesCreated) != 0 {
		t.Errorf("FilesCreated = %v, want none on resync", second.FilesCreated)
	}
	if !containsPath(second.FilesUpdated, "CLAUDE.md") {
		t.Errorf("FilesUpdated = %v, want CLAUDE.md", second.FilesUpdated)
	}
}

func TestSyncZeroConfigSkipsAgentFile(t *testing.T) {
	dir := t.TempDir()
	a := NewClaudeCode()

	res := a.Sync(dir, model.AgentConfig{}, testRules(), SyncOptions{})
	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}
	if _, err := os.Stat(filepath.Join(dir, "CLAUDE.md")); !os.IsNotExist(err) {
		t.Error("CLAUDE.md written for a zero config")
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "rules.md")); err != nil {
		t.Errorf("rules file missing: %v", err)
	}
}

func TestSyncPartialFailureContinues(t *testing.T) {
	dir := t.TempDir()
	// Blocking the agent file path with a directory makes that one write
	// fail while every other write stays possible.
	if err := os.MkdirAll(filepath.Join(dir, "CLAUDE.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	a := NewClaudeCode()
	res := a.Sync(dir, testConfig(), testRules(), SyncOptions{})

	if res.Success {
		t.Fatal("sync reported success despite a blocked write")
	}
	if len(res.Errors) == 0 {
		t.Fatal("want at least one recorded error")
	}
	if !strings.Contains(res.Errors[0], "CLAUDE.md") {
		t.Errorf("error %q does not name the failing path", res.Errors[0])
	}
	// The rules write after the failure still happened.
	if _, err := os.Stat(filepath.Join(dir, ".claude", "rules.md")); err != nil {
		t.Errorf("rules file missing after partial failure: %v", err)
	}
}

func TestSyncFailureIsolatedPerAdapter(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "CLAUDE.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	claude := NewClaudeCode().Sync(dir, testConfig(), testRules(), SyncOptions{})
	cursor := NewCursor().Sync(dir, testConfig(), testRules(), SyncOptions{})

	if claude.Success {
		t.Error("claude-code sync should have failed")
	}
	if !cursor.Success {
		t.Errorf("cursor sync failed: %v", cursor.Errors)
	}
}

func TestSyncInstallsSkills(t *testing.T) {
	srcDir := t.TempDir()
	skillSrc := filepath.Join(srcDir, "my-skill")
	if err := os.MkdirAll(filepath.Join(skillSrc, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"SKILL.md":          "---\nname: My Skill\n---\n\n# My Skill\n",
		"scripts/helper.sh": "#!/bin/sh\n",
		"README.md":         "ignored\n",
		"metadata.json":     "{}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(skillSrc, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	dir := t.TempDir()
	a := NewClaudeCode()
	res := a.Sync(dir, model.AgentConfig{}, nil, SyncOptions{
		Skills: []model.Skill{{Name: "My Skill", SourcePath: skillSrc}},
	})
	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}

	dest := filepath.Join(dir, ".claude", "skills", "my-skill")
	if _, err := os.Stat(filepath.Join(dest, "SKILL.md")); err != nil {
		t.Fatalf("SKILL.md not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "scripts", "helper.sh")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}
	for _, excluded := range []string{"README.md", "metadata.json"} {
		if _, err := os.Stat(filepath.Join(dest, excluded)); !os.IsNotExist(err) {
			t.Errorf("%s should not be copied", excluded)
		}
	}
}

func TestSyncReinstallOverwritesSkillFolder(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "SKILL.md"), []byte("---\nname: s\n---\nv2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	dest := filepath.Join(dir, ".claude", "skills", "s")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dest, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewClaudeCode()
	res := a.Sync(dir, model.AgentConfig{}, nil, SyncOptions{
		Skills: []model.Skill{{Name: "s", SourcePath: srcDir}},
	})
	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file survived reinstall")
	}
	if !containsPath(res.FilesUpdated, filepath.Join("skills", "s")) {
		t.Errorf("FilesUpdated = %v, want the reinstalled skill dir", res.FilesUpdated)
	}
}

func TestGlobalScopePaths(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	a := NewClaudeCode()
	got := a.AgentFilePath("", true)
	want := filepath.Join(os.Getenv("HOME"), ".claude", "CLAUDE.md")
	if got != want {
		t.Errorf("AgentFilePath(global) = %q, want %q", got, want)
	}
	if p := a.SkillsDir("", true); p != filepath.Join(os.Getenv("HOME"), ".claude", "skills") {
		t.Errorf("SkillsDir(global) = %q", p)
	}
}

func TestRegistryByNames(t *testing.T) {
	r := DefaultRegistry()

	agents, err := r.ByNames([]string{"cursor", "codex"})
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 2 || agents[0].Name() != "cursor" || agents[1].Name() != "codex" {
		t.Errorf("agents = %v", Names(agents))
	}

	if _, err := r.ByNames([]string{"emacs"}); err == nil {
		t.Fatal("want error for unknown agent name")
	}
}

func TestRegistryProjectSkillsDirs(t *testing.T) {
	dirs := DefaultRegistry().ProjectSkillsDirs()
	if len(dirs) == 0 {
		t.Fatal("no project skills dirs")
	}
	seen := make(map[string]bool)
	for _, d := range dirs {
		if seen[d] {
			t.Errorf("duplicate dir %q", d)
		}
		seen[d] = true
		if filepath.IsAbs(d) {
			t.Errorf("dir %q should be project-relative", d)
		}
	}
	if !seen[filepath.Join(".claude", "skills")] {
		t.Errorf("dirs = %v, want .claude/skills present", dirs)
	}
}
