package runner

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		want    []string
		wantErr bool
	}{
		{name: "single command", entry: "gofmt", want: []string{"gofmt"}},
		{name: "command with flags", entry: "go vet ./...", want: []string{"go", "vet", "./..."}},
		{name: "double quoted argument", entry: `sh -c "echo hi"`, want: []string{"sh", "-c", "echo hi"}},
		{name: "single quoted argument", entry: "grep 'two words'", want: []string{"grep", "two words"}},
		{name: "collapsed whitespace", entry: "a   b\tc", want: []string{"a", "b", "c"}},
		{name: "empty quoted token preserved", entry: `echo ""`, want: []string{"echo", ""}},
		{name: "unbalanced quote", entry: `sh -c "echo hi`, wantErr: true},
		{name: "empty entry", entry: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitEntry(tt.entry)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("splitEntry(%q) = %v, want error", tt.entry, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitEntry(%q): %v", tt.entry, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitEntry(%q) = %v, want %v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestChunkFilesEmpty(t *testing.T) {
	if got := chunkFiles(nil); got != nil {
		t.Errorf("chunkFiles(nil) = %v, want nil", got)
	}
}

func TestChunkFilesSplitsOnByteBudget(t *testing.T) {
	// Each file costs len+1 bytes of budget, so two of these fill a chunk
	// exactly and the third spills over.
	long := strings.Repeat("x", maxArgvChunk/2-1)
	files := []string{long, long, long}

	chunks := chunkFiles(files)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}

	var total int
	for _, c := range chunks {
		var size int
		for _, f := range c {
			size += len(f) + 1
		}
		if size > maxArgvChunk {
			t.Errorf("chunk of %d files exceeds budget: %d bytes", len(c), size)
		}
		total += len(c)
	}
	if total != len(files) {
		t.Errorf("chunks hold %d files, want %d", total, len(files))
	}
	// Order is preserved across the split.
	if chunks[0][0] != files[0] || chunks[len(chunks)-1][len(chunks[len(chunks)-1])-1] != files[2] {
		t.Error("chunking reordered files")
	}
}

func TestChunkFilesOversizedSingleFile(t *testing.T) {
	huge := strings.Repeat("y", maxArgvChunk*2)
	chunks := chunkFiles([]string{huge, "small"})
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0]) != 1 {
		t.Errorf("oversized file should occupy its own chunk, got %d files", len(chunks[0]))
	}
}
