// Package gitutil reads file timestamps from git history.
package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	vherrors "github.com/AndreyAkinshin/verifyhelper/internal/errors"
)

// Repo reads commit times from the git repository at root.
type Repo struct {
	root string
	now  func() time.Time
}

// New creates a Repo for the repository containing root.
func New(root string) *Repo {
	return &Repo{root: root, now: time.Now}
}

// CheckAvailable returns an environment error when git is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("git"); err != nil {
		return vherrors.Environment("git not found in PATH; it is required to detect changed files")
	}
	return nil
}

// CommitTime returns the latest commit time among paths. Paths with
// uncommitted changes, untracked paths and paths never committed yield the
// current time, so that results older than the working tree are stale.
func (r *Repo) CommitTime(ctx context.Context, paths []string) (time.Time, error) {
	if len(paths) == 0 {
		return r.now(), nil
	}

	status, err := r.git(ctx, append([]string{"status", "--porcelain", "--untracked-files=all", "--"}, paths...)...)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(status) != "" {
		return r.now(), nil
	}

	out, err := r.git(ctx, append([]string{"log", "-1", "--format=%cI", "--"}, paths...)...)
	if err != nil {
		return time.Time{}, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return r.now(), nil
	}
	t, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse commit time %q: %w", out, err)
	}
	return t, nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
