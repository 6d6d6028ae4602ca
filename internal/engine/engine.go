// Package engine turns a loaded pipeline into an executed run: it discovers
// candidate files from git, resolves every declared hook, schedules them with
// file-conflict awareness, and streams ordered results to the output sinks.
package engine

import (
	"context"
	"fmt"
	"os"

	"prehook/internal/command"
	"prehook/internal/config"
	"prehook/internal/gitutil"
	"prehook/internal/hooks"
	"prehook/internal/output"
	"prehook/internal/pipeline"
	"prehook/internal/runner"
	"prehook/internal/store"
)

func exitCodeForRun(fatal, partial, failed bool) int {
	// Exit code contract:
	// 0 = clean run, nothing to report
	// 1 = hook failures or files modified
	// 2 = partial run (some hooks errored or could not resolve)
	// 3 = fatal error (run did not execute)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if failed {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()
	if !cfg.Output.NoConsole {
		outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus, cfg.Output.NoColor, cfg.Runtime.Verbose))
	}
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		outMgr.AddSink(fs)
	}
	return outMgr, nil
}

type Engine struct {
	exec      command.Executor
	storeRoot string

	// runHooks is a test seam for hook execution.
	// If nil, Engine uses the real runner.
	runHooks hookRunner
}

func New() *Engine {
	return &Engine{exec: command.RealExecutor{}}
}

// NewWithExecutor builds an engine whose git plumbing, source checkouts, and
// hook subprocesses all go through e, with source checkouts cached under
// storeRoot.
func NewWithExecutor(e command.Executor, storeRoot string) *Engine {
	return &Engine{exec: e, storeRoot: storeRoot}
}

// Run executes the configured pipeline and returns the process exit code.
// The working directory must be the repository top level; relative paths in
// results and hook argv are repo-relative.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	fatal := func(format string, args ...any) int {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return exitCodeForRun(true, false, false)
	}

	runCtx := ctx
	if cfg.Runtime.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Runtime.Timeout)
		defer cancel()
	}

	pcfg, err := pipeline.Load(cfg.Selection.ConfigPath)
	if err != nil {
		return fatal("Error loading pipeline: %v", err)
	}
	candidates, err := e.resolveCandidates(runCtx, cfg)
	if err != nil {
		return fatal("Error resolving candidate files: %v", err)
	}
	candidates, err = topLevelFilter(pcfg.Files, pcfg.Exclude, candidates)
	if err != nil {
		return fatal("Error in pipeline file patterns: %v", err)
	}

	st, err := e.checkoutStore()
	if err != nil {
		return fatal("Error opening checkout store: %v", err)
	}
	plan, err := NewPlanner(st).Build(runCtx, pcfg, cfg.Selection.HookID, candidates)
	if err != nil {
		return fatal("Error planning run: %v", err)
	}
	plan.FailFast = plan.FailFast || cfg.Runtime.FailFast

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		return fatal("Error creating output sinks: %v", err)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Hooks: len(plan.Hooks), Files: len(candidates)})

	run := e.runHooks
	if run == nil {
		run = runner.NewWithExecutor(".", cfg.Runtime.HookTimeout, e.exec)
	}
	sched, err := NewScheduler(run, cfg.Runtime.Concurrency)
	if err != nil {
		return fatal("Error creating scheduler: %v", err)
	}

	hasErrors, hasFailures, hasModified := streamOrderedResults(sched.Execute(runCtx, plan), len(plan.Hooks), outMgr)

	code := exitCodeForRun(false, hasErrors, hasFailures || hasModified)
	_ = outMgr.Write(output.Event{
		Type:     "run.finished",
		Overall:  overallStatus(hasErrors, hasFailures, hasModified),
		ExitCode: code,
	})
	return code
}

// streamOrderedResults forwards scheduler results to the sinks in pipeline
// declaration order, buffering any hook that finishes before its
// predecessors have reported.
func streamOrderedResults(resCh <-chan IndexedResult, total int, outMgr *output.Manager) (hasErrors, hasFailures, hasModified bool) {
	pending := make(map[int]hooks.Result, total)
	next := 0

	emit := func(r hooks.Result) {
		switch r.Status {
		case hooks.StatusError:
			hasErrors = true
		case hooks.StatusFail:
			hasFailures = true
		case hooks.StatusModified:
			hasModified = true
		}
		_ = outMgr.Write(r)
	}

	for ir := range resCh {
		pending[ir.Index] = ir.Result
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			emit(r)
			next++
		}
	}
	// The channel closes only after every hook reported, so pending is
	// normally empty here; drain any leftovers in index order.
	for ; next < total; next++ {
		if r, ok := pending[next]; ok {
			emit(r)
		}
	}
	return hasErrors, hasFailures, hasModified
}

func overallStatus(hasErrors, hasFailures, hasModified bool) string {
	switch {
	case hasErrors:
		return "error"
	case hasFailures:
		return "failed"
	case hasModified:
		return "modified"
	default:
		return "passed"
	}
}

func (e *Engine) resolveCandidates(ctx context.Context, cfg *config.Config) ([]string, error) {
	if len(cfg.Selection.Files) > 0 {
		// Explicit file lists replace git discovery; entries that do not
		// exist as regular files are dropped.
		var out []string
		for _, f := range cfg.Selection.Files {
			info, err := os.Stat(f)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			out = append(out, f)
		}
		return out, nil
	}

	g := gitutil.NewWithExecutor(".", e.exec)
	if cfg.Selection.AllFiles {
		return g.AllFiles(ctx)
	}
	return g.StagedFiles(ctx)
}

func (e *Engine) checkoutStore() (*store.Store, error) {
	root := e.storeRoot
	if root == "" {
		var err error
		if root, err = store.DefaultRoot(); err != nil {
			return nil, err
		}
	}
	return store.NewWithExecutor(root, e.exec), nil
}
