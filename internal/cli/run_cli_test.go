package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prehook/internal/flags"
)

func TestRunFlagsRegistered(t *testing.T) {
	names := []string{
		flags.FlagConfig,
		flags.FlagAllFiles,
		flags.FlagFiles,
		flags.FlagHook,
		flags.FlagConsoleFormat,
		flags.FlagConsoleFilterStatus,
		flags.FlagOut,
		flags.FlagOutFormat,
		flags.FlagNoConsole,
		flags.FlagNoColor,
		flags.FlagConcurrency,
		flags.FlagTimeout,
		flags.FlagHookTimeout,
		flags.FlagFailFast,
	}
	for _, name := range names {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("run command missing --%s", name)
		}
	}
}

func TestRunFlagDefaultsMatchConfig(t *testing.T) {
	if got := runCmd.Flags().Lookup(flags.FlagConfig).DefValue; got != ".pre-commit-config.yaml" {
		t.Errorf("--config default = %q", got)
	}
	if got := runCmd.Flags().Lookup(flags.FlagConsoleFormat).DefValue; got != "text" {
		t.Errorf("--console-format default = %q", got)
	}
	if got := runCmd.Flags().Lookup(flags.FlagTimeout).DefValue; got != "30m0s" {
		t.Errorf("--timeout default = %q", got)
	}
	if got := runCmd.Flags().Lookup(flags.FlagHookTimeout).DefValue; got != "2m0s" {
		t.Errorf("--hook-timeout default = %q", got)
	}
}

func TestRerootFiles(t *testing.T) {
	top := t.TempDir()
	sub := filepath.Join(top, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	got, err := rerootFiles([]string{"main.py", "../README.md", filepath.Join(top, "docs", "a.md")}, top)
	if err != nil {
		t.Fatalf("rerootFiles: %v", err)
	}
	want := []string{filepath.Join("src", "main.py"), "README.md", filepath.Join("docs", "a.md")}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := rerootFiles([]string{"../../outside.txt"}, top); err == nil {
		t.Error("expected error for a path outside the repository")
	}
}

func TestValidateCommandAcceptsValidPipeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	if err := os.WriteFile(path, []byte(`
repos:
  - repo: builtin
    hooks:
      - id: trailing-whitespace
`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	validateCmd.SetOut(&buf)
	defer validateCmd.SetOut(nil)

	old := validateConfigPath
	validateConfigPath = path
	defer func() { validateConfigPath = old }()

	validateCmd.Run(validateCmd, nil)
	if !strings.Contains(buf.String(), "valid (1 repos, 1 hooks)") {
		t.Errorf("output = %q", buf.String())
	}
}
