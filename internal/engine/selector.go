package engine

import (
	"fmt"
	"regexp"

	"prehook/internal/hooks"
	"prehook/internal/identify"
)

// fileFilter is the compiled selection predicate for one hook: the files and
// exclude regexes plus the type tag constraints, merged config-over-manifest.
// Patterns are unanchored searches against the repo-relative path, matching
// the pipeline file's declared semantics.
type fileFilter struct {
	files        *regexp.Regexp
	exclude      *regexp.Regexp
	types        []string
	typesOr      []string
	excludeTypes []string
}

func newFileFilter(h *hooks.ResolvedHook) (*fileFilter, error) {
	f := &fileFilter{
		types:        h.Types,
		typesOr:      h.TypesOr,
		excludeTypes: h.ExcludeTypes,
	}
	var err error
	if h.Files != "" {
		if f.files, err = regexp.Compile(h.Files); err != nil {
			return nil, fmt.Errorf("hook %s: invalid files pattern: %w", h.ID, err)
		}
	}
	if h.Exclude != "" {
		if f.exclude, err = regexp.Compile(h.Exclude); err != nil {
			return nil, fmt.Errorf("hook %s: invalid exclude pattern: %w", h.ID, err)
		}
	}
	return f, nil
}

func (f *fileFilter) matches(path string) bool {
	if f.files != nil && !f.files.MatchString(path) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(path) {
		return false
	}
	if len(f.types) > 0 && !identify.HasAll(path, f.types) {
		return false
	}
	if len(f.typesOr) > 0 && !identify.HasAny(path, f.typesOr) {
		return false
	}
	if len(f.excludeTypes) > 0 && identify.HasAny(path, f.excludeTypes) {
		return false
	}
	return true
}

// selectFiles returns the candidates h should run against, preserving the
// candidate order. The result is always a subset of candidates; running the
// selection twice yields the same set.
func selectFiles(h *hooks.ResolvedHook, candidates []string) ([]string, error) {
	f, err := newFileFilter(h)
	if err != nil {
		return nil, err
	}
	var selected []string
	for _, c := range candidates {
		if f.matches(c) {
			selected = append(selected, c)
		}
	}
	return selected, nil
}

// topLevelFilter applies the pipeline-wide files and exclude patterns, which
// narrow the candidate set before any per-hook selection.
func topLevelFilter(files, exclude string, candidates []string) ([]string, error) {
	if files == "" && exclude == "" {
		return candidates, nil
	}
	var err error
	var filesRe, excludeRe *regexp.Regexp
	if files != "" {
		if filesRe, err = regexp.Compile(files); err != nil {
			return nil, fmt.Errorf("invalid top-level files pattern: %w", err)
		}
	}
	if exclude != "" {
		if excludeRe, err = regexp.Compile(exclude); err != nil {
			return nil, fmt.Errorf("invalid top-level exclude pattern: %w", err)
		}
	}
	var out []string
	for _, c := range candidates {
		if filesRe != nil && !filesRe.MatchString(c) {
			continue
		}
		if excludeRe != nil && excludeRe.MatchString(c) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
