// Package gitutil wraps the git invocations the runner needs: locating the
// repository, discovering candidate files, and finding the hooks directory.
// All state lives in the working tree; nothing here mutates the repository.
package gitutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"prehook/internal/command"
)

// ErrNotARepository is returned when the working directory is not inside a
// git work tree.
var ErrNotARepository = errors.New("not inside a git repository")

// Git runs git commands rooted at a directory.
type Git struct {
	dir  string
	exec command.Executor
}

func New(dir string) *Git {
	return NewWithExecutor(dir, command.RealExecutor{})
}

func NewWithExecutor(dir string, e command.Executor) *Git {
	return &Git{dir: dir, exec: e}
}

// TopLevel returns the absolute path of the work tree root.
func (g *Git) TopLevel(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return "", ErrNotARepository
		}
		return "", err
	}
	top := strings.TrimSpace(out)
	if top == "" {
		return "", ErrNotARepository
	}
	return top, nil
}

// HooksDir returns the absolute path of the directory git reads hooks from,
// honoring core.hooksPath.
func (g *Git) HooksDir(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	hooks := strings.TrimSpace(out)
	if !filepath.IsAbs(hooks) {
		hooks = filepath.Join(g.dir, hooks)
	}
	return hooks, nil
}

// StagedFiles returns paths staged for the next commit, relative to the work
// tree root. Deleted files are excluded: a hook cannot run against a path
// that no longer exists.
func (g *Git) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

// AllFiles returns every path tracked by git, relative to the work tree root.
func (g *Git) AllFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := g.exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

func splitNul(out string) []string {
	var files []string
	for _, f := range strings.Split(out, "\x00") {
		if f == "" {
			continue
		}
		files = append(files, f)
	}
	return files
}
