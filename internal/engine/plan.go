package engine

import (
	"context"
	"fmt"

	"prehook/internal/hooks"
	"prehook/internal/pipeline"
	"prehook/internal/store"
)

// PlannedHook is one hook scheduled for execution, in pipeline declaration
// order. A hook whose source could not be resolved carries Err and is
// reported as an ERROR result instead of running.
type PlannedHook struct {
	Index int
	Hook  *hooks.ResolvedHook
	Files []string
	Err   error

	fileSet map[string]struct{}
}

// conflictsWith reports whether the two hooks touch at least one common file.
// Conflicting hooks must not run concurrently: the earlier one may rewrite
// files the later one reads.
func (p *PlannedHook) conflictsWith(other *PlannedHook) bool {
	a, b := p, other
	if len(b.fileSet) < len(a.fileSet) {
		a, b = b, a
	}
	for f := range a.fileSet {
		if _, ok := b.fileSet[f]; ok {
			return true
		}
	}
	return false
}

// Plan is the full ordered hook schedule for one run.
type Plan struct {
	Hooks    []*PlannedHook
	FailFast bool
}

// Planner resolves pipeline declarations into executable hooks: builtin ids
// against the check registry, local hooks against their own entry, remote
// hooks against the manifest of their source checkout.
type Planner struct {
	store *store.Store
}

func NewPlanner(st *store.Store) *Planner {
	return &Planner{store: st}
}

// Build resolves every hook in pcfg against candidates. hookID, when
// non-empty, restricts the plan to that single hook id. Returned errors are
// fatal for the whole run; per-hook resolution failures land on
// PlannedHook.Err instead.
func (pl *Planner) Build(ctx context.Context, pcfg *pipeline.Config, hookID string, candidates []string) (*Plan, error) {
	plan := &Plan{FailFast: pcfg.FailFast}

	for _, repo := range pcfg.Repos {
		resolved, err := pl.resolveRepo(ctx, repo)
		if err != nil {
			return nil, err
		}
		for _, rh := range resolved {
			if hookID != "" && rh.hook != nil && rh.hook.ID != hookID {
				continue
			}
			if hookID != "" && rh.hook == nil {
				continue
			}
			ph := &PlannedHook{Index: len(plan.Hooks), Hook: rh.hook, Err: rh.err}
			if rh.err == nil {
				files, err := selectFiles(rh.hook, candidates)
				if err != nil {
					ph.Err = err
				} else {
					ph.Files = files
					ph.fileSet = make(map[string]struct{}, len(files))
					for _, f := range files {
						ph.fileSet[f] = struct{}{}
					}
				}
			}
			plan.Hooks = append(plan.Hooks, ph)
		}
	}

	if hookID != "" && len(plan.Hooks) == 0 {
		return nil, fmt.Errorf("no hook with id %q in the pipeline", hookID)
	}
	return plan, nil
}

// resolvedEntry pairs a resolved hook with its per-hook resolution error.
// Exactly one of the two fields is set, except that an errored entry keeps
// the partially resolved hook for reporting when available.
type resolvedEntry struct {
	hook *hooks.ResolvedHook
	err  error
}

func (pl *Planner) resolveRepo(ctx context.Context, repo pipeline.Repo) ([]resolvedEntry, error) {
	switch {
	case repo.IsBuiltin():
		return pl.resolveBuiltin(repo)
	case repo.IsLocal():
		return resolveLocal(repo), nil
	default:
		return pl.resolveRemote(ctx, repo)
	}
}

func (pl *Planner) resolveBuiltin(repo pipeline.Repo) ([]resolvedEntry, error) {
	entries := make([]resolvedEntry, 0, len(repo.Hooks))
	for _, cfg := range repo.Hooks {
		c, ok := hooks.Lookup(cfg.ID)
		if !ok {
			return nil, &pipeline.ConfigError{
				Err: fmt.Errorf("no builtin hook with id %q (see `prehook hooks list`)", cfg.ID),
			}
		}
		h := hooks.Merge(cfg, builtinManifest(c), pipeline.RepoBuiltin)
		h.Check = c
		entries = append(entries, resolvedEntry{hook: h})
	}
	return entries, nil
}

func resolveLocal(repo pipeline.Repo) []resolvedEntry {
	entries := make([]resolvedEntry, 0, len(repo.Hooks))
	for _, cfg := range repo.Hooks {
		entries = append(entries, resolvedEntry{
			hook: hooks.Merge(cfg, pipeline.ManifestHook{}, pipeline.RepoLocal),
		})
	}
	return entries
}

func (pl *Planner) resolveRemote(ctx context.Context, repo pipeline.Repo) ([]resolvedEntry, error) {
	dir, err := pl.store.Checkout(ctx, repo.Repo, repo.Rev)
	if err != nil {
		// The source is unavailable; every hook it provides errors, but the
		// rest of the pipeline still runs.
		entries := make([]resolvedEntry, 0, len(repo.Hooks))
		for _, cfg := range repo.Hooks {
			entries = append(entries, resolvedEntry{
				hook: &hooks.ResolvedHook{Source: repo.Repo, ID: cfg.ID, Name: cfg.DisplayName()},
				err:  err,
			})
		}
		return entries, nil
	}

	man, err := pipeline.LoadManifest(dir)
	if err != nil {
		return nil, &pipeline.ConfigError{
			Err: fmt.Errorf("hook source %s at %s: %w", repo.Repo, repo.Rev, err),
		}
	}

	entries := make([]resolvedEntry, 0, len(repo.Hooks))
	for _, cfg := range repo.Hooks {
		manHook, ok := man.Lookup(cfg.ID)
		if !ok {
			return nil, &pipeline.ConfigError{
				Err: fmt.Errorf("hook source %s at %s provides no hook %q (available: %v)", repo.Repo, repo.Rev, cfg.ID, man.IDs()),
			}
		}

		h := hooks.Merge(cfg, manHook, repo.Repo)
		h.Dir = dir

		if !runnableLanguage(h.Language) {
			// Hook sources written for interpreter runtimes are usable when a
			// builtin check implements the same hook id.
			if c, ok := hooks.Lookup(cfg.ID); ok {
				h.Check = c
				h.Language = ""
				entries = append(entries, resolvedEntry{hook: h})
				continue
			}
			entries = append(entries, resolvedEntry{
				hook: h,
				err: &store.ResolutionError{
					Repo: repo.Repo,
					Rev:  repo.Rev,
					Err:  fmt.Errorf("hook %s uses unsupported language %q", cfg.ID, h.Language),
				},
			})
			continue
		}
		entries = append(entries, resolvedEntry{hook: h})
	}
	return entries, nil
}

func runnableLanguage(lang string) bool {
	switch lang {
	case hooks.LanguageSystem, hooks.LanguageScript, hooks.LanguageFail:
		return true
	}
	return false
}

// builtinManifest synthesizes the manifest entry a builtin check would ship:
// its id, display name, and default file selection.
func builtinManifest(c hooks.Check) pipeline.ManifestHook {
	man := pipeline.ManifestHook{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
	}
	if tc, ok := c.(interface{ Types() []string }); ok {
		man.Types = tc.Types()
	}
	return man
}
