package core

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

const cloneTimeout = 60 * time.Second

// Checkout is a scoped temp-directory resource holding a cloned repository.
// Cleanup removes the directory exactly once; callers that clone must
// defer Cleanup so errors and cancellations cannot leak temp directories.
type Checkout struct {
	Dir string

	once sync.Once
}

// Cleanup removes the checkout directory. Safe to call multiple times and
// on partially-populated or already-removed directories.
func (c *Checkout) Cleanup() {
	c.once.Do(func() {
		_ = os.RemoveAll(c.Dir)
	})
}

// Clone performs a shallow clone of the source's CloneURL into a fresh
// temp directory, checking out Ref when present. Failures are returned as
// *CloneError with classified diagnostics.
func Clone(src *ParsedSource) (*Checkout, error) {
	tmpDir, err := os.MkdirTemp("", "skilldock-clone-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cloneTimeout)
	defer cancel()

	args := []string{"clone", "--depth", "1"}
	if src.Ref != "" {
		args = append(args, "--branch", src.Ref)
	}
	args = append(args, src.CloneURL, tmpDir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	// Give git a moment to exit on SIGKILL before CombinedOutput gives up
	// on its pipes.
	cmd.WaitDelay = 5 * time.Second

	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		raw := string(output)
		if ctx.Err() == context.DeadlineExceeded {
			raw = fmt.Sprintf("command timed out after %s", cloneTimeout)
		}
		return nil, ClassifyCloneError(src.CloneURL, formatCloneCommand(src.CloneURL, src.Ref), raw)
	}

	return &Checkout{Dir: tmpDir}, nil
}
