package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const validConfig = `repos:
-   repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.5.0
    hooks:
    -   id: trailing-whitespace
    -   id: check-added-large-files
        args: [--maxkb=1024]
-   repo: local
    hooks:
    -   id: go-vet
        name: go vet
        entry: go vet ./...
        language: system
        pass_filenames: false
`

func TestLoadBytesValid(t *testing.T) {
	cfg, err := LoadBytes([]byte(validConfig))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if len(cfg.Repos) != 2 {
		t.Fatalf("got %d repos, want 2", len(cfg.Repos))
	}
	if cfg.Repos[0].Rev != "v4.5.0" {
		t.Errorf("rev = %q, want v4.5.0", cfg.Repos[0].Rev)
	}
	if !cfg.Repos[1].IsLocal() {
		t.Error("second repo should be local")
	}
	hook := cfg.Repos[0].Hooks[1]
	if !reflect.DeepEqual(hook.Args, []string{"--maxkb=1024"}) {
		t.Errorf("args = %v", hook.Args)
	}
	local := cfg.Repos[1].Hooks[0]
	if local.PassFilenames == nil || *local.PassFilenames {
		t.Error("pass_filenames should decode to false")
	}
	if local.DisplayName() != "go vet" {
		t.Errorf("DisplayName = %q", local.DisplayName())
	}
}

func TestLoadBytesErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    "repos: [\n",
			wantErr: "parse YAML",
		},
		{
			name:    "missing repos",
			yaml:    "fail_fast: true\n",
			wantErr: "repos",
		},
		{
			name: "remote without rev",
			yaml: `repos:
-   repo: https://github.com/psf/black
    hooks:
    -   id: black
`,
			wantErr: "rev",
		},
		{
			name: "hook without id",
			yaml: `repos:
-   repo: local
    hooks:
    -   name: nameless
        entry: "true"
        language: system
`,
			wantErr: "id",
		},
		{
			name: "unknown key",
			yaml: `repos: []
hoooks: []
`,
			wantErr: "hoooks",
		},
		{
			name: "local hook without entry",
			yaml: `repos:
-   repo: local
    hooks:
    -   id: broken
        language: system
`,
			wantErr: "require entry",
		},
		{
			name: "invalid files regex",
			yaml: `repos:
-   repo: local
    hooks:
    -   id: x
        entry: "true"
        language: system
        files: "(["
`,
			wantErr: "invalid regex",
		},
		{
			name: "duplicate id same name",
			yaml: `repos:
-   repo: local
    hooks:
    -   id: x
        entry: "true"
        language: system
    -   id: x
        entry: "false"
        language: system
`,
			wantErr: "duplicate hook id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if _, ok := err.(*ConfigError); !ok {
				t.Errorf("error type %T, want *ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateIDDistinctNamesAllowed(t *testing.T) {
	cfg := `repos:
-   repo: local
    hooks:
    -   id: fmt
        name: fmt (fast)
        entry: "true"
        language: system
    -   id: fmt
        name: fmt (slow)
        entry: "true"
        language: system
`
	if _, err := LoadBytes([]byte(cfg)); err != nil {
		t.Fatalf("distinct names should be allowed, got: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pre-commit-config.yaml")
	if err := os.WriteFile(path, []byte(validConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Repos) != 2 {
		t.Errorf("got %d repos", len(cfg.Repos))
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	ce, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("error type %T, want *ConfigError", err)
	}
	if ce.Path == "" {
		t.Error("ConfigError should carry the path")
	}
}

func TestRoundTrip(t *testing.T) {
	cfg, err := LoadBytes([]byte(validConfig))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("LoadBytes(round-trip): %v", err)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("round-trip mismatch:\n%#v\n%#v", cfg, again)
	}
}
