package proof

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommitSource returns the hash of the commit to prove.
type CommitSource interface {
	LatestCommit(ctx context.Context) (string, error)
}

// GitCommitSource reads the latest commit from a local git checkout.
type GitCommitSource struct {
	// Dir is the working tree; empty means the current directory.
	Dir string
	// Binary defaults to "git".
	Binary string
}

// LatestCommit runs `git log -1 --format=%H` and validates its output.
func (g GitCommitSource) LatestCommit(ctx context.Context) (string, error) {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "log", "-1", "--format=%H")
	cmd.Dir = g.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git command failed: %s: %w", msg, err)
		}
		return "", fmt.Errorf("git command failed: %w", err)
	}

	hash := strings.TrimSpace(stdout.String())
	if err := ValidateCommitHash(hash); err != nil {
		return "", errors.Join(err, fmt.Errorf("unexpected commit hash %q", hash))
	}
	return hash, nil
}

// StaticCommit is a CommitSource that always returns the same hash.
type StaticCommit string

func (s StaticCommit) LatestCommit(context.Context) (string, error) {
	if err := ValidateCommitHash(string(s)); err != nil {
		return "", err
	}
	return string(s), nil
}
