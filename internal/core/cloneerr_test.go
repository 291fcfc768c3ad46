package core

import (
	"fmt"
	"strings"
	"testing"
)

func TestClassifyCloneOutput(t *testing.T) {
	tests := []struct {
		output string
		want   CloneErrorKind
	}{
		{"fatal: could not read Username for 'https://github.com': terminal prompts disabled", CloneErrAuth},
		{"remote: HTTP Basic: Access denied. Authentication failed", CloneErrAuth},
		{"remote: Repository not found.", CloneErrRepoNotFound},
		{"fatal: 'repo' does not appear to be a git repository", CloneErrRepoNotFound},
		{"fatal: unable to access 'https://x/': Could not resolve host: x", CloneErrNetwork},
		{"ssh: connect to host github.com port 22: Connection refused", CloneErrNetwork},
		{"git@github.com: Permission denied (publickey).", CloneErrSSHKey},
		{"Host key verification failed.", CloneErrSSHKey},
		{"command timed out after 1m0s", CloneErrTimeout},
		{"something completely unexpected", CloneErrUnknown},
	}

	for _, tt := range tests {
		if got := classifyCloneOutput(tt.output); got != tt.want {
			t.Errorf("classifyCloneOutput(%q) = %v, want %v", tt.output, got, tt.want)
		}
	}
}

func TestCloneErrorMessage(t *testing.T) {
	ce := ClassifyCloneError(
		"https://github.com/x/y.git",
		"git clone --depth 1 https://github.com/x/y.git",
		"Cloning into 'y'...\nremote: Repository not found.\n",
	)
	if ce.Kind != CloneErrRepoNotFound {
		t.Fatalf("Kind = %v, want %v", ce.Kind, CloneErrRepoNotFound)
	}
	msg := ce.Error()
	if !strings.Contains(msg, "repository not found") {
		t.Errorf("Error() = %q, want the kind label", msg)
	}
	if !strings.Contains(msg, "Repository not found") {
		t.Errorf("Error() = %q, want the first meaningful git line", msg)
	}
	if len(ce.Hints) == 0 {
		t.Error("want at least one hint")
	}
}

func TestAsCloneError(t *testing.T) {
	ce := ClassifyCloneError("u", "c", "out")
	wrapped := fmt.Errorf("installing: %w", ce)

	got, ok := AsCloneError(wrapped)
	if !ok || got != ce {
		t.Errorf("AsCloneError(wrapped) = %v, %v", got, ok)
	}
	if _, ok := AsCloneError(fmt.Errorf("plain")); ok {
		t.Error("AsCloneError(plain) = true, want false")
	}
}

func TestFormatCloneCommand(t *testing.T) {
	got := formatCloneCommand("https://github.com/x/y.git", "main")
	want := "git clone --depth 1 --branch main https://github.com/x/y.git"
	if got != want {
		t.Errorf("formatCloneCommand = %q, want %q", got, want)
	}

	got = formatCloneCommand("https://github.com/x/y.git", "")
	if strings.Contains(got, "--branch") {
		t.Errorf("formatCloneCommand without ref = %q, should omit --branch", got)
	}
}
