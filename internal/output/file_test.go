package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prehook/internal/hooks"
)

func TestFileSinkInfersFormat(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "json extension", path: "out.json", want: "json"},
		{name: "ndjson extension", path: "out.ndjson", want: "ndjson"},
		{name: "jsonl extension", path: "out.jsonl", want: "ndjson"},
		{name: "explicit format beats extension", path: "out.json", format: "ndjson", want: "ndjson"},
		{name: "unknown extension", path: "out.txt", wantErr: true},
		{name: "unsupported format", path: "out.json", format: "xml", wantErr: true},
		{name: "empty path", path: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path != "" {
				path = filepath.Join(t.TempDir(), path)
			}
			s, err := NewFileSink(path, tt.format)
			if tt.wantErr {
				if err == nil {
					s.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFileSink: %v", err)
			}
			defer s.Close()
			if s.format != tt.want {
				t.Errorf("format = %q, want %q", s.format, tt.want)
			}
		})
	}
}

func TestFileSinkJSONAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}

	_ = s.Write(hooks.Result{HookID: "a", Name: "a", Status: hooks.StatusPass})
	_ = s.Write(Event{Type: "run.finished", ExitCode: 0})
	_ = s.Write(hooks.Result{HookID: "b", Name: "b", Status: hooks.StatusFail})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []hooks.Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid aggregate: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("aggregate holds %d results, want 2 (events excluded)", len(got))
	}
}

func TestFileSinkNDJSONStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}

	_ = s.Write(Event{Type: "run.started", Hooks: 1})
	_ = s.Write(hooks.Result{HookID: "a", Name: "a", Status: hooks.StatusPass})
	_ = s.Write(Event{Type: "run.finished", ExitCode: 0})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestFileSinkCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}
