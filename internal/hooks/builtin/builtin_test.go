package builtin

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prehook/internal/hooks"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTrailingWhitespace(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "a.py", "print('hi')\n")
	dirty := writeFile(t, dir, "b.py", "x = 1 \n\ty = 2\t\n")
	crlf := writeFile(t, dir, "c.txt", "line\r\nnext\r\n")

	c := &TrailingWhitespaceCheck{}
	out, code, err := c.Run(context.Background(), nil, []string{clean, dirty, crlf})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(out, "b.py") {
		t.Errorf("output %q should name the fixed file", out)
	}
	if strings.Contains(out, "a.py") || strings.Contains(out, "c.txt") {
		t.Errorf("output %q names files that needed no fix", out)
	}

	got, _ := os.ReadFile(dirty)
	if string(got) != "x = 1\n\ty = 2\n" {
		t.Errorf("fixed content = %q", got)
	}
	// CRLF endings survive untouched.
	got, _ = os.ReadFile(crlf)
	if string(got) != "line\r\nnext\r\n" {
		t.Errorf("crlf content rewritten: %q", got)
	}

	// Second run is clean: fixes are idempotent.
	out, code, err = c.Run(context.Background(), nil, []string{clean, dirty, crlf})
	if err != nil || code != 0 || out != "" {
		t.Errorf("second run: out=%q code=%d err=%v, want clean", out, code, err)
	}
}

func TestEndOfFileFixer(t *testing.T) {
	dir := t.TempDir()
	missing := writeFile(t, dir, "a.txt", "no newline")
	extra := writeFile(t, dir, "b.txt", "too many\n\n\n")
	empty := writeFile(t, dir, "c.txt", "")
	good := writeFile(t, dir, "d.txt", "fine\n")

	c := &EndOfFileCheck{}
	out, code, err := c.Run(context.Background(), nil, []string{missing, extra, empty, good})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(out, "a.txt") || !strings.Contains(out, "b.txt") {
		t.Errorf("output %q should name both fixed files", out)
	}

	for path, want := range map[string]string{missing: "no newline\n", extra: "too many\n", empty: "", good: "fine\n"} {
		got, _ := os.ReadFile(path)
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestLargeFiles(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.bin", "tiny")
	big := filepath.Join(dir, "big.bin")
	if err := os.WriteFile(big, make([]byte, 2048*1024), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &LargeFilesCheck{}
	out, code, err := c.Run(context.Background(), []string{"--maxkb=1024"}, []string{small, big})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(out, "big.bin") || strings.Contains(out, "small.bin") {
		t.Errorf("output = %q", out)
	}

	// Default limit passes the small file.
	_, code, err = c.Run(context.Background(), nil, []string{small})
	if err != nil || code != 0 {
		t.Errorf("small file should pass with default limit: code=%d err=%v", code, err)
	}

	if _, _, err := c.Run(context.Background(), []string{"--maxkb=zero"}, nil); err == nil {
		t.Error("invalid --maxkb should error")
	}
}

func TestMergeConflict(t *testing.T) {
	dir := t.TempDir()
	conflicted := writeFile(t, dir, "bad.go", "ok\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> branch\n")
	underline := writeFile(t, dir, "doc.md", "Title\n=========\nbody\n")
	clean := writeFile(t, dir, "ok.go", "package ok\n")

	c := &MergeConflictCheck{}
	out, code, err := c.Run(context.Background(), nil, []string{conflicted, underline, clean})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(out, "bad.go:2") {
		t.Errorf("output %q should point at the first marker", out)
	}
	if strings.Contains(out, "doc.md") {
		t.Errorf("setext underline flagged as conflict: %q", out)
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{
		"trailing-whitespace",
		"end-of-file-fixer",
		"check-added-large-files",
		"check-merge-conflict",
	} {
		if _, ok := hooks.Lookup(id); !ok {
			t.Errorf("builtin %s not registered", id)
		}
	}
}
