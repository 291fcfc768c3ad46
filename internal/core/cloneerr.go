package core

import (
	"errors"
	"fmt"
	"strings"
)

// CloneErrorKind classifies why a git clone failed.
type CloneErrorKind int

const (
	// CloneErrUnknown is an unclassified clone failure.
	CloneErrUnknown CloneErrorKind = iota
	// CloneErrAuth means authentication failed.
	CloneErrAuth
	// CloneErrRepoNotFound means the URL is wrong or access is denied.
	CloneErrRepoNotFound
	// CloneErrNetwork means the host could not be reached.
	CloneErrNetwork
	// CloneErrSSHKey means the SSH key was rejected or not found.
	CloneErrSSHKey
	// CloneErrTimeout means the clone operation timed out.
	CloneErrTimeout
)

// String returns a human-readable label for the error kind.
func (k CloneErrorKind) String() string {
	switch k {
	case CloneErrAuth:
		return "authentication required"
	case CloneErrRepoNotFound:
		return "repository not found"
	case CloneErrNetwork:
		return "network error"
	case CloneErrSSHKey:
		return "ssh key error"
	case CloneErrTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// CloneError is a structured error returned when git clone fails. It wraps
// the raw git output with classification and actionable hints.
type CloneError struct {
	Kind      CloneErrorKind
	URL       string
	Command   string   // the git command that was run, for display
	RawOutput string   // raw stderr/stdout from git
	Hints     []string // actionable suggestions for the user
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone failed (%s): %s", e.Kind, e.firstLine())
}

func (e *CloneError) firstLine() string {
	for _, line := range strings.Split(e.RawOutput, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "Cloning into") {
			return line
		}
	}
	if e.RawOutput != "" {
		return strings.TrimSpace(e.RawOutput)
	}
	return "clone failed"
}

// AsCloneError unwraps err looking for a *CloneError.
func AsCloneError(err error) (*CloneError, bool) {
	var ce *CloneError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ClassifyCloneError examines git clone output and returns a structured
// CloneError distinguishing auth, not-found, and network failures.
func ClassifyCloneError(cloneURL, command, rawOutput string) *CloneError {
	kind := classifyCloneOutput(rawOutput)
	return &CloneError{
		Kind:      kind,
		URL:       cloneURL,
		Command:   command,
		RawOutput: strings.TrimSpace(rawOutput),
		Hints:     cloneHints(kind, cloneURL),
	}
}

// classifyCloneOutput pattern-matches git stderr to determine the kind.
func classifyCloneOutput(output string) CloneErrorKind {
	lower := strings.ToLower(output)

	// Timeout is set by us, not git, so check it first.
	if strings.Contains(lower, "timed out") {
		return CloneErrTimeout
	}

	if strings.Contains(lower, "permission denied (publickey)") ||
		strings.Contains(lower, "host key verification failed") ||
		strings.Contains(lower, "no such identity") {
		return CloneErrSSHKey
	}

	if strings.Contains(lower, "could not read username") ||
		strings.Contains(lower, "could not read password") ||
		strings.Contains(lower, "authentication failed") ||
		strings.Contains(lower, "invalid credentials") ||
		strings.Contains(lower, "401") ||
		strings.Contains(lower, "403") {
		return CloneErrAuth
	}

	if strings.Contains(lower, "repository not found") ||
		strings.Contains(lower, "does not appear to be a git repository") ||
		strings.Contains(lower, "project not found") ||
		strings.Contains(lower, "not found") {
		return CloneErrRepoNotFound
	}

	if strings.Contains(lower, "could not resolve host") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection timed out") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "no route to host") {
		return CloneErrNetwork
	}

	return CloneErrUnknown
}

// cloneHints returns actionable suggestions for the error kind.
func cloneHints(kind CloneErrorKind, cloneURL string) []string {
	switch kind {
	case CloneErrAuth:
		return []string{
			"Run `gh auth login` to authenticate with GitHub",
			"Or configure a git credential helper: `git config --global credential.helper store`",
		}
	case CloneErrSSHKey:
		return []string{
			"Ensure your SSH key is loaded: `ssh-add -l`",
			"Check `~/.ssh/config` for the correct Host alias if using multiple accounts",
		}
	case CloneErrRepoNotFound:
		return []string{
			"Verify the repository URL is correct",
			"Ensure you have access to this repository (it may be private)",
		}
	case CloneErrNetwork:
		return []string{
			"Check your internet connection",
			"Verify the hostname in the URL is correct",
		}
	case CloneErrTimeout:
		return []string{
			"This may indicate a network issue or a very large repository",
			"Try again; the server may have been temporarily unavailable",
		}
	default:
		return []string{
			fmt.Sprintf("Try cloning manually to diagnose: `git clone %s`", cloneURL),
		}
	}
}

// formatCloneCommand builds the display string for a git clone command.
func formatCloneCommand(url, ref string) string {
	args := []string{"git", "clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, url)
	return strings.Join(args, " ")
}
