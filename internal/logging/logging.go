// Package logging provides pre-configured component loggers for diagnostic
// output. Human-facing run output goes through internal/output sinks; these
// loggers carry the internal plumbing detail (clones, scheduling, subprocess
// invocations) that only matters with --verbose.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	root     = logrus.New()
	loggers  = make(map[string]*logrus.Entry)
	mu       sync.Mutex
	initOnce sync.Once
)

func setup() {
	root.SetOutput(os.Stderr)
	root.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	level := logrus.WarnLevel
	if env := os.Getenv("PREHOOK_LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	root.SetLevel(level)
}

// NewLogger returns a logger scoped to a component name. Loggers are cached
// per component.
func NewLogger(component string) *logrus.Entry {
	initOnce.Do(setup)

	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[component]; ok {
		return l
	}
	l := root.WithField("component", component)
	loggers[component] = l
	return l
}

// SetVerbose raises the log level to debug. PREHOOK_LOG_LEVEL still wins if it
// names an even lower threshold.
func SetVerbose(verbose bool) {
	initOnce.Do(setup)
	if verbose && root.GetLevel() < logrus.DebugLevel {
		root.SetLevel(logrus.DebugLevel)
	}
}
