package output

import "prehook/internal/hooks"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - hook.result
// - run.finished
//
// JSON mode remains an aggregate of hooks.Result values.
type Event struct {
	Type string `json:"type"`
	*hooks.Result
	Hooks    int    `json:"hooks,omitempty"`
	Files    int    `json:"total_files,omitempty"`
	Overall  string `json:"overall,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

func eventFromResult(r hooks.Result) Event {
	return Event{Type: "hook.result", Result: &r}
}
