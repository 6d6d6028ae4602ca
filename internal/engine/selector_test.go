package engine

import (
	"reflect"
	"testing"

	"prehook/internal/hooks"
)

func TestSelectFiles(t *testing.T) {
	candidates := []string{
		"a.py",
		"src/b.py",
		"src/b_test.py",
		"docs/readme.md",
		"vendor/lib.py",
		"img/logo.png",
	}

	tests := []struct {
		name string
		hook hooks.ResolvedHook
		want []string
	}{
		{
			name: "no patterns selects everything",
			hook: hooks.ResolvedHook{ID: "h"},
			want: candidates,
		},
		{
			name: "files pattern is an unanchored search",
			hook: hooks.ResolvedHook{ID: "h", Files: `\.py$`},
			want: []string{"a.py", "src/b.py", "src/b_test.py", "vendor/lib.py"},
		},
		{
			name: "exclude wins over files",
			hook: hooks.ResolvedHook{ID: "h", Files: `\.py$`, Exclude: `^vendor/`},
			want: []string{"a.py", "src/b.py", "src/b_test.py"},
		},
		{
			name: "exclude alone",
			hook: hooks.ResolvedHook{ID: "h", Exclude: `_test\.py$`},
			want: []string{"a.py", "src/b.py", "docs/readme.md", "vendor/lib.py", "img/logo.png"},
		},
		{
			name: "types require every tag",
			hook: hooks.ResolvedHook{ID: "h", Types: []string{"python"}},
			want: []string{"a.py", "src/b.py", "src/b_test.py", "vendor/lib.py"},
		},
		{
			name: "types_or requires any tag",
			hook: hooks.ResolvedHook{ID: "h", TypesOr: []string{"python", "markdown"}},
			want: []string{"a.py", "src/b.py", "src/b_test.py", "docs/readme.md", "vendor/lib.py"},
		},
		{
			name: "exclude_types drops matching tags",
			hook: hooks.ResolvedHook{ID: "h", ExcludeTypes: []string{"binary"}},
			want: []string{"a.py", "src/b.py", "src/b_test.py", "docs/readme.md", "vendor/lib.py"},
		},
		{
			name: "patterns and types combine",
			hook: hooks.ResolvedHook{ID: "h", Files: `^src/`, Types: []string{"python"}},
			want: []string{"src/b.py", "src/b_test.py"},
		},
		{
			name: "nothing matches",
			hook: hooks.ResolvedHook{ID: "h", Files: `\.rs$`},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectFiles(&tt.hook, candidates)
			if err != nil {
				t.Fatalf("selectFiles: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectFiles = %v, want %v", got, tt.want)
			}

			// Selection is idempotent: re-selecting from its own output
			// changes nothing.
			again, err := selectFiles(&tt.hook, got)
			if err != nil {
				t.Fatalf("selectFiles(again): %v", err)
			}
			if !reflect.DeepEqual(again, got) {
				t.Errorf("selection not idempotent: %v vs %v", again, got)
			}
		})
	}
}

func TestSelectFilesInvalidPattern(t *testing.T) {
	if _, err := selectFiles(&hooks.ResolvedHook{ID: "h", Files: `(`}, []string{"a"}); err == nil {
		t.Error("expected error for invalid files pattern")
	}
	if _, err := selectFiles(&hooks.ResolvedHook{ID: "h", Exclude: `(`}, []string{"a"}); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}

func TestTopLevelFilter(t *testing.T) {
	candidates := []string{"a.go", "b.py", "gen/c.go"}

	got, err := topLevelFilter(`\.go$`, `^gen/`, candidates)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"a.go"}) {
		t.Errorf("filtered = %v", got)
	}

	got, err = topLevelFilter("", "", candidates)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, candidates) {
		t.Errorf("no-op filter changed candidates: %v", got)
	}

	if _, err := topLevelFilter(`(`, "", candidates); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
