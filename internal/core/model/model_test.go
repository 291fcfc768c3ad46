package model

import (
	"regexp"
	"strings"
	"testing"
)

func TestMCPServerValidate(t *testing.T) {
	tests := []struct {
		name    string
		server  MCPServer
		wantErr bool
		want    MCPServerType
	}{
		{
			name:   "command shape infers type",
			server: MCPServer{Name: "db", Command: "npx", Args: []string{"-y", "mcp-db"}},
			want:   MCPServerCommand,
		},
		{
			name:   "url shape infers type",
			server: MCPServer{Name: "search", URL: "https://example.com/mcp"},
			want:   MCPServerHTTP,
		},
		{
			name:    "both shapes rejected",
			server:  MCPServer{Name: "bad", Command: "npx", URL: "https://example.com"},
			wantErr: true,
		},
		{
			name:    "neither shape rejected",
			server:  MCPServer{Name: "empty"},
			wantErr: true,
		},
		{
			name:    "missing name rejected",
			server:  MCPServer{Command: "npx"},
			wantErr: true,
		},
		{
			name:    "type mismatch rejected",
			server:  MCPServer{Name: "x", Type: MCPServerHTTP, Command: "npx"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if tt.server.Type != tt.want {
				t.Errorf("Type = %q, want %q", tt.server.Type, tt.want)
			}
		})
	}
}

func TestSyncResultClassification(t *testing.T) {
	var r SyncResult
	r.AgentID = "cursor"
	r.RecordWrite("/p/AGENTS.md", false)
	r.RecordWrite("/p/AGENTS.md", true)

	final := r.Finalize()
	if !final.Success {
		t.Error("Success = false, want true")
	}
	if len(final.FilesCreated) != 1 || final.FilesCreated[0] != "/p/AGENTS.md" {
		t.Errorf("FilesCreated = %v", final.FilesCreated)
	}
	if len(final.FilesUpdated) != 1 {
		t.Errorf("FilesUpdated = %v", final.FilesUpdated)
	}
}

var safeName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Code Review", "code-review"},
		{"Foo / Bar!!", "foo-bar"},
		{"simple", "simple"},
		{"dots.are.fine", "dots.are.fine"},
		{"under_score", "under_score"},
		{"--trimmed--", "trimmed"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeName_NeverTraversal(t *testing.T) {
	for _, in := range []string{"..", "../..", "...", "///", "!!!", ""} {
		got := SanitizeName(in)
		if !safeName.MatchString(got) {
			t.Errorf("SanitizeName(%q) = %q contains unsafe characters", in, got)
		}
		if got == ".." || strings.Contains(got, "/") {
			t.Errorf("SanitizeName(%q) = %q is a traversal segment", in, got)
		}
	}
}

func TestSanitizeName_EmptyFallsBack(t *testing.T) {
	got := SanitizeName("!!!")
	if !strings.HasPrefix(got, "skill-") {
		t.Errorf("SanitizeName(%q) = %q, want generated skill-* fallback", "!!!", got)
	}
	if got != SanitizeName("!!!") {
		t.Error("fallback name is not stable for the same input")
	}
}
