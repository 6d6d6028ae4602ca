package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// DefaultConfigFile is the pipeline declaration read by default, relative to
// the repository root.
const DefaultConfigFile = ".pre-commit-config.yaml"

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect run
	// behavior, keep the CLI flags in internal/cli/run.go in sync.
	Selection Selection
	Output    Output
	Runtime   Runtime
}

type Selection struct {
	// ConfigPath is the pipeline declaration file (see --config).
	// Relative paths are resolved against the repository root.
	ConfigPath string

	// AllFiles runs hooks against every file tracked by git instead of the
	// staged set (see --all-files).
	AllFiles bool

	// Files is an explicit candidate file list (see --files). When set, it
	// replaces git discovery entirely.
	Files []string

	// HookID restricts the run to a single hook id (see --hook).
	// Empty means all configured hooks.
	HookID string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by result status (see --console-filter-status).
	// Allowed values: PASS, FAIL, MODIFIED, SKIPPED, ERROR.
	ConsoleFilterStatus []string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool

	// NoColor disables ANSI colors on the console sink (see --no-color).
	NoColor bool
}

type Runtime struct {
	// Concurrency controls how many hooks may execute at once (see --concurrency).
	// Must be >= 1. Hooks with overlapping file sets are serialized regardless.
	Concurrency int

	// Timeout bounds the whole run (see --timeout). Must be > 0.
	Timeout time.Duration

	// HookTimeout bounds a single hook invocation (see --hook-timeout).
	// Must be > 0. A hook that exceeds it fails with a timeout diagnostic.
	HookTimeout time.Duration

	// FailFast skips remaining unstarted hooks after the first failure
	// (see --fail-fast). The pipeline file's fail_fast key has the same effect.
	FailFast bool

	// Verbose enables diagnostic logging and per-hook output even on success.
	Verbose bool
}

func New() *Config {
	return &Config{
		Selection: Selection{
			ConfigPath: DefaultConfigFile,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Concurrency: runtime.NumCPU(),
			Timeout:     30 * time.Minute,
			HookTimeout: 2 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Selection.Files = splitCommaList(c.Selection.Files)
	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)

	if strings.TrimSpace(c.Selection.ConfigPath) == "" {
		return errors.New("--config must not be empty")
	}
	if c.Selection.AllFiles && len(c.Selection.Files) > 0 {
		return errors.New("--all-files and --files are mutually exclusive")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Runtime.HookTimeout <= 0 {
		return errors.New("--hook-timeout must be > 0")
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
