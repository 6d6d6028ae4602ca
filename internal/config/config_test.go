package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidateDefaults(t *testing.T) {
	c := New()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate, got: %v", err)
	}
	if c.Selection.ConfigPath != DefaultConfigFile {
		t.Errorf("ConfigPath = %q, want %q", c.Selection.ConfigPath, DefaultConfigFile)
	}
	if c.Output.ConsoleFormat != "text" {
		t.Errorf("ConsoleFormat = %q, want text", c.Output.ConsoleFormat)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty config path",
			mutate:  func(c *Config) { c.Selection.ConfigPath = "  " },
			wantErr: "--config",
		},
		{
			name: "all-files and files",
			mutate: func(c *Config) {
				c.Selection.AllFiles = true
				c.Selection.Files = []string{"a.py"}
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "bad console format",
			mutate:  func(c *Config) { c.Output.ConsoleFormat = "xml" },
			wantErr: "--console-format",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Runtime.Concurrency = 0 },
			wantErr: "--concurrency",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Runtime.Timeout = 0 },
			wantErr: "--timeout",
		},
		{
			name:    "zero hook timeout",
			mutate:  func(c *Config) { c.Runtime.HookTimeout = 0 },
			wantErr: "--hook-timeout",
		},
		{
			name:    "out without extension",
			mutate:  func(c *Config) { c.Output.Out = "results" },
			wantErr: "missing extension",
		},
		{
			name:    "out with unknown extension",
			mutate:  func(c *Config) { c.Output.Out = "results.xml" },
			wantErr: "cannot infer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNormalization(t *testing.T) {
	c := New()
	c.Selection.Files = []string{"a.py,b.py", " c.py "}
	c.Output.ConsoleFormat = " TEXT "
	c.Output.Out = "out.NDJSON"
	c.Runtime.HookTimeout = time.Minute
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got, want := len(c.Selection.Files), 3; got != want {
		t.Errorf("Files count = %d, want %d", got, want)
	}
	if c.Output.ConsoleFormat != "text" {
		t.Errorf("ConsoleFormat = %q, want text", c.Output.ConsoleFormat)
	}
	if c.Output.OutFormat != "ndjson" {
		t.Errorf("OutFormat = %q, want ndjson (inferred)", c.Output.OutFormat)
	}
}
