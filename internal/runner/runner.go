// Package runner executes one resolved hook against its selected files and
// classifies the outcome. A hook that rewrites files reports MODIFIED even
// when it exits zero; a hook that exceeds its timeout reports FAIL with a
// timeout kind rather than hanging the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"prehook/internal/command"
	"prehook/internal/hooks"
	"prehook/internal/logging"
)

type Runner struct {
	exec        command.Executor
	repoRoot    string
	hookTimeout time.Duration
	log         *logrus.Entry
}

func New(repoRoot string, hookTimeout time.Duration) *Runner {
	return NewWithExecutor(repoRoot, hookTimeout, command.RealExecutor{})
}

func NewWithExecutor(repoRoot string, hookTimeout time.Duration, e command.Executor) *Runner {
	return &Runner{
		exec:        e,
		repoRoot:    repoRoot,
		hookTimeout: hookTimeout,
		log:         logging.NewLogger("runner"),
	}
}

// Run executes h against files and returns its result. The caller has
// already decided the file set; an empty set with AlwaysRun unset is the
// caller's responsibility to skip.
func (r *Runner) Run(ctx context.Context, h *hooks.ResolvedHook, files []string) hooks.Result {
	res := hooks.Result{
		HookID: h.ID,
		Name:   h.Name,
		Files:  len(files),
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if r.hookTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.hookTimeout)
		defer cancel()
	}

	start := time.Now()
	before := fileDigests(files)

	output, code, err := r.invoke(runCtx, h, files)
	res.Output = output
	res.SetDuration(time.Since(start))

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			res.Status = hooks.StatusFail
			res.Kind = hooks.KindTimeout
			res.Output = strings.TrimRight(res.Output, "\n")
			if res.Output != "" {
				res.Output += "\n"
			}
			res.Output += fmt.Sprintf("hook timed out after %s", r.hookTimeout)
			return res
		}
		res.Status = hooks.StatusError
		res.Output = strings.TrimSpace(res.Output + "\n" + err.Error())
		return res
	}

	// File rewrites win over the exit code: a formatter that fixed
	// everything still requires a re-stage and re-run.
	if digestsDiffer(before, fileDigests(files)) {
		res.Status = hooks.StatusModified
		return res
	}
	if code != 0 {
		res.Status = hooks.StatusFail
		return res
	}
	res.Status = hooks.StatusPass
	return res
}

func (r *Runner) invoke(ctx context.Context, h *hooks.ResolvedHook, files []string) (string, int, error) {
	if h.Check != nil {
		r.log.WithField("hook", h.ID).Debug("running builtin check")
		return h.Check.Run(ctx, h.Args, files)
	}

	switch h.Language {
	case hooks.LanguageFail:
		// A fail hook exists to forbid its file set; matching files are the
		// violation.
		var out strings.Builder
		out.WriteString(h.Entry)
		out.WriteString("\n\n")
		for _, f := range files {
			out.WriteString(f)
			out.WriteString("\n")
		}
		return out.String(), 1, nil
	case hooks.LanguageSystem, hooks.LanguageScript:
		return r.invokeCommand(ctx, h, files)
	default:
		return "", 0, fmt.Errorf("unsupported hook language %q", h.Language)
	}
}

func (r *Runner) invokeCommand(ctx context.Context, h *hooks.ResolvedHook, files []string) (string, int, error) {
	argv, err := splitEntry(h.Entry)
	if err != nil {
		return "", 0, err
	}
	if h.Language == hooks.LanguageScript {
		// Script entries are paths inside the hook source checkout.
		argv[0] = filepath.Join(h.Dir, argv[0])
	}
	argv = append(argv, h.Args...)

	if !h.PassFilenames {
		return r.runOnce(ctx, argv)
	}

	var out strings.Builder
	worst := 0
	for _, chunk := range chunkFiles(files) {
		chunkOut, code, err := r.runOnce(ctx, append(argv[:len(argv):len(argv)], chunk...))
		out.WriteString(chunkOut)
		if err != nil {
			return out.String(), worst, err
		}
		if code > worst {
			worst = code
		}
	}
	return out.String(), worst, nil
}

func (r *Runner) runOnce(ctx context.Context, argv []string) (string, int, error) {
	r.log.WithFields(logrus.Fields{"cmd": argv[0], "args": len(argv) - 1}).Debug("invoking hook command")

	cmd := r.exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.repoRoot

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), 0, err
	}
	return string(out), 0, nil
}
