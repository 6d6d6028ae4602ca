package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"prehook/internal/hooks"
)

// lineWidth is the column the status label is right-aligned to in text mode.
const lineWidth = 79

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	verbose         bool
	mu              sync.Mutex
	results         []hooks.Result // For JSON array output
	allowedStatuses map[string]bool

	pass     *color.Color
	fail     *color.Color
	modified *color.Color
	skipped  *color.Color
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string, noColor, verbose bool) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer:   w,
		format:   format,
		verbose:  verbose,
		pass:     color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		modified: color.New(color.FgYellow),
		skipped:  color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{s.pass, s.fail, s.modified, s.skipped} {
			c.DisableColor()
		}
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	// Apply filtering if configured
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(hooks.Result); ok {
			if !s.allowedStatuses[string(r.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(hooks.Result)
		if !ok {
			// Ignore non-result events in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return s.flush()
		case hooks.Result:
			e := eventFromResult(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return s.flush()
		default:
			return nil
		}
	case "text":
		r, ok := v.(hooks.Result)
		if !ok {
			// Ignore lifecycle events in text mode.
			return nil
		}
		if err := s.writeTextResult(r); err != nil {
			return err
		}
		return s.flush()
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

// flush pushes buffered writers through. Plain writers have nothing to flush.
func (s *ConsoleSink) flush() error {
	if f, ok := s.writer.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *ConsoleSink) writeTextResult(r hooks.Result) error {
	label, c := s.statusLabel(r)

	name := r.Name
	if name == "" {
		name = r.HookID
	}
	dots := lineWidth - len(name) - len(label)
	if dots < 3 {
		dots = 3
	}
	if _, err := fmt.Fprintf(s.writer, "%s%s%s\n", name, strings.Repeat(".", dots), c.Sprint(label)); err != nil {
		return err
	}

	if out := strings.TrimRight(r.Output, "\n"); out != "" && (s.verbose || r.Status != hooks.StatusPass) {
		if r.Status != hooks.StatusPass && r.Status != hooks.StatusSkipped {
			if _, err := fmt.Fprintf(s.writer, "- hook id: %s\n", r.HookID); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(s.writer, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) statusLabel(r hooks.Result) (string, *color.Color) {
	switch r.Status {
	case hooks.StatusPass:
		return "Passed", s.pass
	case hooks.StatusFail:
		if r.Kind == hooks.KindTimeout {
			return "Timed out", s.fail
		}
		return "Failed", s.fail
	case hooks.StatusModified:
		return "Files were modified", s.modified
	case hooks.StatusSkipped:
		return "Skipped", s.skipped
	case hooks.StatusError:
		return "Error", s.fail
	default:
		return string(r.Status), s.fail
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return s.flush()
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
