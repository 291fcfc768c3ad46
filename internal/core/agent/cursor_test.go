package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/skilldock/skilldock/internal/core/model"
)

func TestCursorRulesMDC(t *testing.T) {
	rules := model.RuleSet{
		Global: []string{"Prefer composition"},
		PathSpecific: []model.PathRule{
			{Pattern: "src/**/*.ts", Rules: []string{"No any"}},
			{Pattern: "*.css", Rules: []string{"Use variables"}},
		},
	}

	out := NewCursor().GenerateRulesConfig(rules)
	if len(out) != 3 {
		t.Fatalf("got %d files, want 3: %v", len(out), out)
	}

	general, ok := out["general.mdc"]
	if !ok {
		t.Fatal("general.mdc missing")
	}
	if !strings.Contains(general, "- Prefer composition") {
		t.Errorf("general.mdc:\n%s", general)
	}

	ts, ok := out["src-.mdc"]
	if !ok {
		// The sanitized pattern drives the filename; verify by scanning.
		for name := range out {
			if name != "general.mdc" && strings.HasSuffix(name, ".mdc") {
				ts = out[name]
				ok = true
				break
			}
		}
	}
	if !ok {
		t.Fatalf("no pattern rule file in %v", out)
	}

	// Each .mdc file is YAML frontmatter between --- markers, then bullets.
	parts := strings.SplitN(ts, "---\n", 3)
	if len(parts) != 3 || parts[0] != "" {
		t.Fatalf("malformed mdc file:\n%s", ts)
	}
	var fm struct {
		Description string `yaml:"description"`
		Globs       string `yaml:"globs"`
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter: %v", err)
	}
	if fm.Globs == "" || fm.Description == "" {
		t.Errorf("frontmatter = %+v", fm)
	}
}

func TestCursorSyncWritesMDCFiles(t *testing.T) {
	dir := t.TempDir()
	rules := &model.RuleSet{
		Global: []string{"Prefer composition"},
		PathSpecific: []model.PathRule{
			{Pattern: "*.go", Rules: []string{"Wrap errors with context"}},
		},
	}

	res := NewCursor().Sync(dir, model.AgentConfig{}, rules, SyncOptions{})
	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}

	rulesDir := filepath.Join(dir, ".cursor", "rules")
	entries, err := os.ReadDir(rulesDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 {
		t.Fatalf("rules dir = %v, want general.mdc plus one pattern file", names)
	}
	for _, n := range names {
		if !strings.HasSuffix(n, ".mdc") {
			t.Errorf("unexpected file %q", n)
		}
	}
}

func TestCursorMCPKeepsJSONC(t *testing.T) {
	dir := t.TempDir()
	mcpPath := filepath.Join(dir, ".cursor", "mcp.json")
	if err := os.MkdirAll(filepath.Dir(mcpPath), 0o755); err != nil {
		t.Fatal(err)
	}
	existing := "{\n  // managed by hand\n  \"mcpServers\": {}\n}\n"
	if err := os.WriteFile(mcpPath, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := model.AgentConfig{MCPServers: []model.MCPServer{{Name: "docs", Command: "npx"}}}
	res := NewCursor().Sync(dir, cfg, nil, SyncOptions{})
	if !res.Success {
		t.Fatalf("sync failed: %v", res.Errors)
	}

	data, err := os.ReadFile(mcpPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "// managed by hand") {
		t.Errorf("comment stripped:\n%s", data)
	}
	if !strings.Contains(string(data), `"docs"`) {
		t.Errorf("entry missing:\n%s", data)
	}
}
