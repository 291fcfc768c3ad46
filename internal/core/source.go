// Package core implements the discovery-and-sync engine for skilldock:
// source string resolution, repository fetching, skill discovery, project
// configuration loading, and the sync orchestrator. It has zero UI
// dependencies and is independently testable.
package core

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// SourceType indicates the kind of skill source.
type SourceType string

const (
	SourceTypeGit    SourceType = "git"
	SourceTypeGitHub SourceType = "github"
	SourceTypeGitLab SourceType = "gitlab"
	SourceTypeLocal  SourceType = "local"
)

// ParsedSource is the normalized form of a user-supplied source string.
// It is produced once per invocation and never mutated.
type ParsedSource struct {
	Type     SourceType
	Owner    string
	Repo     string
	CloneURL string // full git clone URL (empty for local sources)
	Ref      string // branch/tag to check out, if specified
	SubPath  string // path within the repo to search for skills

	LocalPath string // absolute path for local sources
}

// SourceParseError reports a source string that matches no recognized form.
type SourceParseError struct {
	Input  string
	Reason string
}

func (e *SourceParseError) Error() string {
	return fmt.Sprintf("unrecognized source %q: %s", e.Input, e.Reason)
}

// ownerRepoPattern matches "owner/repo" shorthand (2 segments, no protocol).
var ownerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// genericGitURLPattern matches protocol-prefixed git URLs we pass through.
var genericGitURLPattern = regexp.MustCompile(`^(ssh|git|https?)://\S+$`)

// ParseSource parses a skill source string into a structured ParsedSource.
//
// Recognized forms, in order:
//   - "./local/path" or "/abs/path"     → local directory
//   - "owner/repo"                      → GitHub repo shorthand
//   - "https://github.com/owner/repo"   → HTTPS URL (GitHub or GitLab)
//   - ".../tree/<ref>/<path>"           → repo root + ref + subpath
//   - "git@host:owner/repo.git"         → SSH URL, passed through
func ParseSource(input string) (*ParsedSource, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &SourceParseError{Input: input, Reason: "empty source"}
	}

	if isLocalPath(input) {
		return parseLocalSource(input)
	}

	if strings.HasPrefix(input, "git@") {
		return parseSSHSource(input)
	}

	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		return parseHTTPSource(input)
	}

	if ownerRepoPattern.MatchString(input) {
		segments := strings.SplitN(input, "/", 2)
		repo := strings.TrimSuffix(segments[1], ".git")
		return &ParsedSource{
			Type:     SourceTypeGitHub,
			Owner:    segments[0],
			Repo:     repo,
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", segments[0], repo),
		}, nil
	}

	// A syntactically valid generic git URL is accepted as-is.
	if genericGitURLPattern.MatchString(input) {
		return &ParsedSource{Type: SourceTypeGit, CloneURL: input}, nil
	}

	return nil, &SourceParseError{Input: input, Reason: "not a local path, owner/repo shorthand, or git URL"}
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~/")
}

func parseLocalSource(input string) (*ParsedSource, error) {
	expanded := input
	if strings.HasPrefix(input, "~/") {
		home, _ := os.UserHomeDir()
		expanded = filepath.Join(home, input[2:])
	}
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &SourceParseError{Input: input, Reason: "local path not found"}
	}
	if !info.IsDir() {
		return nil, &SourceParseError{Input: input, Reason: "local path is not a directory"}
	}

	return &ParsedSource{Type: SourceTypeLocal, LocalPath: absPath}, nil
}

func parseSSHSource(input string) (*ParsedSource, error) {
	// git@github.com:owner/repo.git
	parts := strings.SplitN(input, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, &SourceParseError{Input: input, Reason: "malformed SSH URL"}
	}

	host := strings.TrimPrefix(parts[0], "git@")
	repoPath := strings.TrimSuffix(parts[1], ".git")
	segments := strings.SplitN(repoPath, "/", 2)

	sourceType := SourceTypeGit
	if strings.Contains(host, "github.com") {
		sourceType = SourceTypeGitHub
	} else if strings.Contains(host, "gitlab.com") {
		sourceType = SourceTypeGitLab
	}

	result := &ParsedSource{
		Type:     sourceType,
		CloneURL: input, // SSH URLs pass through unchanged
	}
	if len(segments) == 2 {
		result.Owner = segments[0]
		result.Repo = segments[1]
	}
	return result, nil
}

func parseHTTPSource(input string) (*ParsedSource, error) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, &SourceParseError{Input: input, Reason: "invalid URL"}
	}

	sourceType := SourceTypeGit
	switch {
	case strings.Contains(u.Host, "github.com"):
		sourceType = SourceTypeGitHub
	case strings.Contains(u.Host, "gitlab.com"):
		sourceType = SourceTypeGitLab
	}

	pathParts := strings.Split(strings.Trim(u.Path, "/"), "/")

	result := &ParsedSource{Type: sourceType}

	if len(pathParts) >= 2 && pathParts[0] != "" {
		result.Owner = pathParts[0]
		// Normalize trailing slashes and duplicate .git suffixes.
		repo := pathParts[1]
		for strings.HasSuffix(repo, ".git") {
			repo = strings.TrimSuffix(repo, ".git")
		}
		result.Repo = repo
		result.CloneURL = fmt.Sprintf("https://%s/%s/%s.git", u.Host, result.Owner, repo)

		// GitHub tree URL: /owner/repo/tree/<ref>/<subpath...>
		if len(pathParts) >= 4 && pathParts[2] == "tree" {
			result.Ref = pathParts[3]
			if len(pathParts) > 4 {
				result.SubPath = strings.Join(pathParts[4:], "/")
			}
		}
		return result, nil
	}

	// Not a recognizable owner/repo URL; use as-is.
	result.CloneURL = input
	return result, nil
}
