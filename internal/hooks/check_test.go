package hooks

import (
	"reflect"
	"testing"

	"prehook/internal/pipeline"
)

func boolPtr(v bool) *bool { return &v }

func TestMergeManifestDefaults(t *testing.T) {
	man := pipeline.ManifestHook{
		ID:       "check-yaml",
		Name:     "Check Yaml",
		Entry:    "check-yaml",
		Language: "python",
		Types:    []string{"yaml"},
	}
	cfg := pipeline.Hook{ID: "check-yaml"}

	h := Merge(cfg, man, "https://example.com/hooks")
	if h.Name != "Check Yaml" || h.Entry != "check-yaml" || h.Language != "python" {
		t.Errorf("manifest defaults not applied: %+v", h)
	}
	if !reflect.DeepEqual(h.Types, []string{"yaml"}) {
		t.Errorf("types = %v", h.Types)
	}
	if !h.PassFilenames {
		t.Error("pass_filenames should default to true")
	}
	if h.Source != "https://example.com/hooks" {
		t.Errorf("source = %q", h.Source)
	}
}

func TestMergeConfigOverrides(t *testing.T) {
	man := pipeline.ManifestHook{
		ID:            "fmt",
		Name:          "Format",
		Entry:         "formatter",
		Language:      "python",
		Files:         `\.py$`,
		PassFilenames: boolPtr(true),
	}
	cfg := pipeline.Hook{
		ID:            "fmt",
		Name:          "Format (strict)",
		Args:          []string{"--strict"},
		Files:         `\.pyi?$`,
		Exclude:       `^vendor/`,
		Types:         []string{"python"},
		PassFilenames: boolPtr(false),
		AlwaysRun:     true,
		FailFast:      true,
	}

	h := Merge(cfg, man, pipeline.RepoLocal)
	if h.Name != "Format (strict)" {
		t.Errorf("name = %q", h.Name)
	}
	if h.Files != `\.pyi?$` || h.Exclude != `^vendor/` {
		t.Errorf("patterns not overridden: files=%q exclude=%q", h.Files, h.Exclude)
	}
	if !reflect.DeepEqual(h.Args, []string{"--strict"}) {
		t.Errorf("args = %v", h.Args)
	}
	if h.PassFilenames {
		t.Error("config pass_filenames=false should win")
	}
	if !h.AlwaysRun || !h.FailFast {
		t.Error("always_run/fail_fast lost in merge")
	}
}

func TestMergeNameFallsBackToID(t *testing.T) {
	h := Merge(pipeline.Hook{ID: "mystery"}, pipeline.ManifestHook{ID: "mystery", Entry: "mystery"}, pipeline.RepoBuiltin)
	if h.Name != "mystery" {
		t.Errorf("name = %q, want id fallback", h.Name)
	}
}

