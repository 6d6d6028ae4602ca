// Package command provides the exec.Cmd creation seam shared by everything
// that shells out (git plumbing, the hook source store, the hook runner).
package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd instances. This abstraction allows for dependency
// injection, enabling test-specific command creation logic (e.g. substituting
// a canned script for a real binary) without modifying production code.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor is the production implementation of Executor, backed by the
// standard os/exec package.
type RealExecutor struct{}

func (RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
