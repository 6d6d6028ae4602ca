// Package pipeline models the declarative hook pipeline: the
// .pre-commit-config.yaml read from the repository under check, and the
// .pre-commit-hooks.yaml manifest shipped by each hook source. Both are
// immutable once loaded; execution state lives in internal/engine.
package pipeline

// Well-known source identifiers that are not clonable URIs.
const (
	// RepoLocal marks hooks defined entirely in the config file, run from the
	// repository under check.
	RepoLocal = "local"

	// RepoBuiltin marks hooks provided by this binary's builtin registry.
	RepoBuiltin = "builtin"
)

// Config is the root of a pipeline declaration. Source order is significant:
// hooks execute (and report) in declaration order.
type Config struct {
	Repos []Repo `yaml:"repos" json:"repos"`

	// Files and Exclude are unanchored Go regexes applied to the whole
	// candidate set before per-hook selection. Exclude wins on conflict.
	Files   string `yaml:"files,omitempty" json:"files,omitempty"`
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// FailFast skips remaining unstarted hooks after the first failure.
	FailFast bool `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty"`

	// MinimumPrehookVersion declares the oldest orchestrator version the
	// config is written for.
	MinimumPrehookVersion string `yaml:"minimum_prehook_version,omitempty" json:"minimum_prehook_version,omitempty"`
}

// Repo is one hook source: a clonable location pinned to an exact revision,
// or one of the well-known local/builtin identifiers.
type Repo struct {
	Repo  string `yaml:"repo" json:"repo"`
	Rev   string `yaml:"rev,omitempty" json:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks" json:"hooks"`
}

func (r Repo) IsLocal() bool   { return r.Repo == RepoLocal }
func (r Repo) IsBuiltin() bool { return r.Repo == RepoBuiltin }

// IsRemote reports whether the source must be cloned before use.
func (r Repo) IsRemote() bool { return !r.IsLocal() && !r.IsBuiltin() }

// Hook is a single configured check. For remote sources most fields default
// from the source's manifest entry; values set here override the manifest.
// For local sources Entry and Language are required.
type Hook struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Entry is the command to run, before args and selected files are
	// appended. Required for local hooks; overrides the manifest otherwise.
	Entry    string `yaml:"entry,omitempty" json:"entry,omitempty"`
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	Args []string `yaml:"args,omitempty" json:"args,omitempty"`

	// Files and Exclude are Go regexes matched anywhere in the path.
	Files   string `yaml:"files,omitempty" json:"files,omitempty"`
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Type tag filters (see internal/identify): Types requires all tags,
	// TypesOr requires at least one, ExcludeTypes rejects any match.
	Types        []string `yaml:"types,omitempty" json:"types,omitempty"`
	TypesOr      []string `yaml:"types_or,omitempty" json:"types_or,omitempty"`
	ExcludeTypes []string `yaml:"exclude_types,omitempty" json:"exclude_types,omitempty"`

	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" json:"additional_dependencies,omitempty"`

	// PassFilenames controls whether selected files are appended to the
	// command line. Nil means "use the manifest value, default true".
	PassFilenames *bool `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty"`

	// AlwaysRun executes the hook even when no files match.
	AlwaysRun bool `yaml:"always_run,omitempty" json:"always_run,omitempty"`

	// FailFast skips remaining unstarted hooks once this hook fails.
	FailFast bool `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty"`

	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// DisplayName returns the human-facing hook name, falling back to the id.
func (h Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}
