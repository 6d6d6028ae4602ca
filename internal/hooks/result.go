package hooks

import "time"

type Status string

const (
	StatusPass     Status = "PASS"
	StatusFail     Status = "FAIL"
	StatusModified Status = "MODIFIED"
	StatusSkipped  Status = "SKIPPED"
	StatusError    Status = "ERROR"
)

// Failure kinds carried on Result.Kind for diagnostics.
const (
	KindTimeout    = "timeout"
	KindDependency = "dependency"
)

// Result is the outcome of one hook invocation. Created per run, carried to
// output sinks, never persisted.
type Result struct {
	HookID string `json:"hook_id"`
	Name   string `json:"name"`
	Status Status `json:"status"`

	// Kind distinguishes failure causes (timeout, dependency) from plain
	// non-zero exits.
	Kind string `json:"kind,omitempty"`

	// Output is the hook's combined stdout/stderr, or the diagnostic message
	// for skipped/error results.
	Output string `json:"output,omitempty"`

	// Files is how many files the hook ran against.
	Files int `json:"files"`

	DurationMS int64 `json:"duration_ms,omitempty"`
}

// SetDuration records d truncated to milliseconds.
func (r *Result) SetDuration(d time.Duration) {
	r.DurationMS = d.Milliseconds()
}
