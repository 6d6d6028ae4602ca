// Package hooks defines the executable form of a configured hook: the Check
// interface for in-process builtin checks, the ResolvedHook value the engine
// schedules, and the builtin check registry.
package hooks

import (
	"context"

	"prehook/internal/pipeline"
)

// Check is an in-process hook implementation. It mirrors the contract of a
// subprocess hook: it may rewrite the given files in place, writes
// diagnostics to its output string, and reports a subprocess-style exit code
// (0 = clean, non-zero = violation found). The returned error is reserved
// for infrastructure failures, not check findings.
type Check interface {
	ID() string
	Name() string
	Description() string

	Run(ctx context.Context, args []string, files []string) (output string, code int, err error)
}

// Hook languages the runner can execute directly.
const (
	// LanguageSystem runs the entry as-is from PATH.
	LanguageSystem = "system"

	// LanguageScript runs the entry relative to the hook source checkout.
	LanguageScript = "script"

	// LanguageFail prints the entry text and fails; used to forbid files.
	LanguageFail = "fail"
)

// ResolvedHook is a configured hook bound to something executable: the config
// entry merged over its manifest defaults, plus either a command or a builtin
// Check. Resolution happens once per run, before scheduling.
type ResolvedHook struct {
	// Source is the repo URI, "local", or "builtin".
	Source string

	ID   string
	Name string

	// Check is non-nil when the hook runs in-process.
	Check Check

	// Entry and Args form the command for subprocess hooks.
	Entry    string
	Language string
	Args     []string

	// Dir is the source checkout for script hooks; empty for local/system.
	Dir string

	// Selection patterns, merged config-over-manifest.
	Files        string
	Exclude      string
	Types        []string
	TypesOr      []string
	ExcludeTypes []string

	PassFilenames bool
	AlwaysRun     bool
	FailFast      bool
	Verbose       bool
}

// Merge binds a config hook to its manifest entry, with config values taking
// precedence. Config args are appended after any args baked into the
// manifest entry command.
func Merge(cfg pipeline.Hook, man pipeline.ManifestHook, source string) *ResolvedHook {
	h := &ResolvedHook{
		Source:       source,
		ID:           cfg.ID,
		Name:         cfg.Name,
		Entry:        man.Entry,
		Language:     man.Language,
		Args:         cfg.Args,
		Files:        man.Files,
		Exclude:      man.Exclude,
		Types:        man.Types,
		TypesOr:      man.TypesOr,
		ExcludeTypes: man.ExcludeTypes,
		AlwaysRun:    man.AlwaysRun || cfg.AlwaysRun,
		FailFast:     cfg.FailFast,
		Verbose:      cfg.Verbose,
	}

	if h.Name == "" {
		h.Name = man.Name
	}
	if h.Name == "" {
		h.Name = cfg.ID
	}
	if cfg.Entry != "" {
		h.Entry = cfg.Entry
	}
	if cfg.Language != "" {
		h.Language = cfg.Language
	}
	if cfg.Files != "" {
		h.Files = cfg.Files
	}
	if cfg.Exclude != "" {
		h.Exclude = cfg.Exclude
	}
	if len(cfg.Types) > 0 {
		h.Types = cfg.Types
	}
	if len(cfg.TypesOr) > 0 {
		h.TypesOr = cfg.TypesOr
	}
	if len(cfg.ExcludeTypes) > 0 {
		h.ExcludeTypes = cfg.ExcludeTypes
	}

	h.PassFilenames = true
	if man.PassFilenames != nil {
		h.PassFilenames = *man.PassFilenames
	}
	if cfg.PassFilenames != nil {
		h.PassFilenames = *cfg.PassFilenames
	}

	return h
}
