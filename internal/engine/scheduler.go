package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"prehook/internal/hooks"
)

// hookRunner executes one resolved hook. Satisfied by *runner.Runner; tests
// substitute a fake.
type hookRunner interface {
	Run(ctx context.Context, h *hooks.ResolvedHook, files []string) hooks.Result
}

// IndexedResult carries a hook result tagged with its declaration position,
// so the consumer can restore pipeline order regardless of completion order.
type IndexedResult struct {
	Index  int
	Result hooks.Result
}

type Scheduler struct {
	runner      hookRunner
	concurrency int
}

func NewScheduler(r hookRunner, concurrency int) (*Scheduler, error) {
	if r == nil {
		return nil, errors.New("runner is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Scheduler{runner: r, concurrency: concurrency}, nil
}

// Execute streams one result per planned hook and closes the channel when
// every hook has reported.
//
// Scheduling semantics:
//   - Hooks whose file sets are disjoint run concurrently, up to the
//     configured concurrency.
//   - Hooks that share files run in declaration order: each waits for every
//     conflicting hook declared before it.
//   - After a failing result, unstarted hooks report SKIPPED when the
//     pipeline (or the failing hook) declares fail-fast.
//   - On context cancellation, running hooks are interrupted by their own
//     contexts and unstarted hooks report SKIPPED; a result is still sent
//     for every hook.
func (s *Scheduler) Execute(ctx context.Context, plan *Plan) <-chan IndexedResult {
	resultsCh := make(chan IndexedResult)

	go func() {
		defer close(resultsCh)

		done := make([]chan struct{}, len(plan.Hooks))
		for i := range done {
			done[i] = make(chan struct{})
		}

		var stopped atomic.Bool

		var g errgroup.Group
		g.SetLimit(s.concurrency)

		for i, ph := range plan.Hooks {
			// Conflicting predecessors this hook must wait for. Predecessors
			// never wait on successors, so the waits cannot cycle.
			var deps []int
			for j := 0; j < i; j++ {
				if ph.conflictsWith(plan.Hooks[j]) {
					deps = append(deps, j)
				}
			}

			i, ph := i, ph
			g.Go(func() error {
				defer close(done[i])

				for _, j := range deps {
					<-done[j]
				}

				res := s.resultFor(ctx, plan, ph, &stopped)
				resultsCh <- IndexedResult{Index: i, Result: res}
				return nil
			})
		}

		_ = g.Wait()
	}()

	return resultsCh
}

func (s *Scheduler) resultFor(ctx context.Context, plan *Plan, ph *PlannedHook, stopped *atomic.Bool) hooks.Result {
	if ph.Err != nil {
		return hooks.Result{
			HookID: ph.Hook.ID,
			Name:   ph.Hook.Name,
			Status: hooks.StatusError,
			Kind:   hooks.KindDependency,
			Output: ph.Err.Error(),
		}
	}

	skipped := func(reason string) hooks.Result {
		return hooks.Result{
			HookID: ph.Hook.ID,
			Name:   ph.Hook.Name,
			Status: hooks.StatusSkipped,
			Output: reason,
		}
	}

	if err := ctx.Err(); err != nil {
		return skipped(fmt.Sprintf("not started: %v", err))
	}
	if stopped.Load() {
		return skipped("not started: an earlier hook failed")
	}
	if len(ph.Files) == 0 && !ph.Hook.AlwaysRun {
		return skipped("no files to check")
	}

	res := s.runner.Run(ctx, ph.Hook, ph.Files)

	switch res.Status {
	case hooks.StatusFail, hooks.StatusModified, hooks.StatusError:
		if plan.FailFast || ph.Hook.FailFast {
			stopped.Store(true)
		}
	}
	return res
}
