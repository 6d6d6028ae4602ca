package output

import (
	"errors"
	"fmt"
)

// Sink is a destination for run results and lifecycle events.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans every written value out to all attached sinks. A failing sink
// never blocks the others; its error is reported joined with the rest.
type Manager struct {
	sinks []Sink
}

func NewManager(sinks ...Sink) *Manager {
	return &Manager{sinks: sinks}
}

// AddSink attaches a sink. Nil sinks are ignored.
func (m *Manager) AddSink(s Sink) {
	if s != nil {
		m.sinks = append(m.sinks, s)
	}
}

func (m *Manager) Write(v any) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(v); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", s, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", s, err))
		}
	}
	return errors.Join(errs...)
}
