package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"prehook/internal/hooks"
)

// FileSink writes structured results to a file. In json mode it collects hook
// results and writes one indented array on Close; in ndjson mode it streams
// every lifecycle event and result as one JSON object per line.
type FileSink struct {
	format  string
	file    *os.File
	mu      sync.Mutex
	results []hooks.Result
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}
	format, err := resolveFileFormat(path, format)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &FileSink{format: format, file: f}, nil
}

// resolveFileFormat validates an explicit format, or infers one from the
// file extension.
func resolveFileFormat(path, format string) (string, error) {
	if format != "" {
		if format != "json" && format != "ndjson" {
			return "", fmt.Errorf("unsupported output format: %s", format)
		}
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".ndjson", ".jsonl":
		return "ndjson", nil
	}
	return "", fmt.Errorf("cannot infer output format from file extension %q", filepath.Ext(path))
}

func (s *FileSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		// The aggregate holds results only; lifecycle events are dropped.
		if r, ok := v.(hooks.Result); ok {
			s.results = append(s.results, r)
		}
		return nil
	}

	var e Event
	switch t := v.(type) {
	case Event:
		e = t
	case hooks.Result:
		e = eventFromResult(t)
	default:
		return nil
	}
	return json.NewEncoder(s.file).Encode(e)
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var encErr error
	if s.format == "json" {
		enc := json.NewEncoder(s.file)
		enc.SetIndent("", "  ")
		encErr = enc.Encode(s.results)
	}
	return errors.Join(encErr, s.file.Close())
}
