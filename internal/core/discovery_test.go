package core

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/skilldock/skilldock/internal/core/model"
)

func writeSkill(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: test skill\n---\n\n# " + name + "\n"
	if err := os.WriteFile(filepath.Join(dir, model.SkillFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func skillNames(skills []model.Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

func newTestDiscoverer() *Discoverer {
	return NewDiscoverer([]string{".claude/skills", ".cursor/skills"})
}

func TestDiscoverRootSkill(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "root-skill")
	// A nested skill must be ignored once the root matches.
	writeSkill(t, filepath.Join(root, "skills", "nested"), "nested")

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "root-skill" {
		t.Fatalf("skills = %v, want exactly [root-skill]", skillNames(skills))
	}
}

func TestDiscoverRootSkillWithoutFrontmatter(t *testing.T) {
	root := t.TempDir()
	content := "# Release Checklist\n\nPlain markdown, no frontmatter block.\n"
	if err := os.WriteFile(filepath.Join(root, model.SkillFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 {
		t.Fatalf("skills = %v, want exactly one from the root manifest", skillNames(skills))
	}
	// The name is humanized from the directory since there is no frontmatter.
	if skills[0].Name == "" {
		t.Error("skill has no name")
	}
}

func TestDiscoverConventionalDirs(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, filepath.Join(root, "skills", "alpha"), "alpha")
	writeSkill(t, filepath.Join(root, "skills", "beta"), "beta")
	writeSkill(t, filepath.Join(root, "skills", ".curated", "gamma"), "gamma")
	// A plain directory without SKILL.md is not a skill.
	if err := os.MkdirAll(filepath.Join(root, "skills", "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0o644); err != nil {
		t.Fatal(err)
	}

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	got := skillNames(skills)
	if len(got) != 3 {
		t.Fatalf("skills = %v, want [alpha beta gamma]", got)
	}
	for _, want := range []string{"alpha", "beta", "gamma"} {
		found := false
		for _, name := range got {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing skill %q in %v", want, got)
		}
	}
}

func TestDiscoverAgentSkillDirs(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, filepath.Join(root, ".claude", "skills", "review"), "review")

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "review" {
		t.Fatalf("skills = %v, want [review]", skillNames(skills))
	}
}

func TestDiscoverFallbackWalk(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, filepath.Join(root, "packages", "web", "helpers"), "helpers")
	writeSkill(t, filepath.Join(root, "tools", "lint"), "lint")

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 2 {
		t.Fatalf("skills = %v, want two", skillNames(skills))
	}
}

func TestDiscoverDepthBound(t *testing.T) {
	root := t.TempDir()
	// Depth 5 from the root: a/b/c/d/skill is reachable, one deeper is not.
	writeSkill(t, filepath.Join(root, "a", "b", "c", "d", "reachable"), "reachable")
	writeSkill(t, filepath.Join(root, "a", "b", "c", "d", "e", "too-deep"), "too-deep")

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "reachable" {
		t.Fatalf("skills = %v, want only [reachable]", skillNames(skills))
	}
}

func TestDiscoverSubPath(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, filepath.Join(root, "bundle", "skills", "inside"), "inside")
	writeSkill(t, filepath.Join(root, "skills", "outside"), "outside")

	skills, err := newTestDiscoverer().Discover(root, "bundle")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "inside" {
		t.Fatalf("skills = %v, want [inside]", skillNames(skills))
	}
}

func TestDiscoverSubPathEscape(t *testing.T) {
	root := t.TempDir()
	if _, err := newTestDiscoverer().Discover(root, "../elsewhere"); err == nil {
		t.Fatal("want error for subpath escaping the root")
	}
}

func TestDiscoverEmptyTree(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src", "lib"), 0o755); err != nil {
		t.Fatal(err)
	}

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 0 {
		t.Fatalf("skills = %v, want none", skillNames(skills))
	}
}

func TestDiscoverSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	outside := t.TempDir()
	writeSkill(t, filepath.Join(outside, "leak"), "leak")

	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Fatal(err)
	}

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range skills {
		if strings.Contains(s.SourcePath, outside) {
			t.Fatalf("skill %q escaped the root via symlink: %s", s.Name, s.SourcePath)
		}
	}
	if len(skills) != 0 {
		t.Fatalf("skills = %v, want none", skillNames(skills))
	}
}

func TestDiscoverSymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "a"), filepath.Join(sub, "loop")); err != nil {
		t.Fatal(err)
	}
	writeSkill(t, filepath.Join(root, "deep", "skill"), "skill")

	// Must terminate and still find the real skill.
	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "skill" {
		t.Fatalf("skills = %v, want [skill]", skillNames(skills))
	}
}

func TestDiscoverSourcePathsContained(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, filepath.Join(root, "skills", "one"), "one")

	skills, err := newTestDiscoverer().Discover(root, "")
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range skills {
		if !strings.HasPrefix(s.SourcePath, resolved) {
			t.Errorf("SourcePath %q is not under root %q", s.SourcePath, resolved)
		}
	}
}
