package builtin

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"prehook/internal/hooks"
)

var conflictMarkers = [][]byte{
	[]byte("<<<<<<< "),
	[]byte(">>>>>>> "),
}

// The middle marker must match the whole line; a prefix match would flag
// setext-style markdown underlines.
var conflictSeparator = []byte("=======")

type MergeConflictCheck struct{}

func (c *MergeConflictCheck) ID() string {
	return "check-merge-conflict"
}

func (c *MergeConflictCheck) Name() string {
	return "Check for Merge Conflicts"
}

func (c *MergeConflictCheck) Description() string {
	return "Fails when a file contains merge conflict markers at the start of a line."
}

// Types restricts the default selection to text files.
func (c *MergeConflictCheck) Types() []string {
	return []string{"text"}
}

func (c *MergeConflictCheck) Run(ctx context.Context, args []string, files []string) (string, int, error) {
	var out strings.Builder
	code := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return out.String(), code, err
		}

		f, err := os.Open(path)
		if err != nil {
			return out.String(), code, fmt.Errorf("open %s: %w", path, err)
		}

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := bytes.TrimSuffix(scanner.Bytes(), []byte("\r"))
			found := ""
			for _, marker := range conflictMarkers {
				if bytes.HasPrefix(line, marker) {
					found = strings.TrimSpace(string(marker))
					break
				}
			}
			if found == "" && bytes.Equal(line, conflictSeparator) {
				found = string(conflictSeparator)
			}
			if found != "" {
				fmt.Fprintf(&out, "%s:%d: merge conflict marker %q\n", path, lineNo, found)
				code = 1
			}
		}
		scanErr := scanner.Err()
		f.Close()
		if scanErr != nil {
			return out.String(), code, fmt.Errorf("scan %s: %w", path, scanErr)
		}
	}

	return out.String(), code, nil
}

func init() {
	hooks.Register(&MergeConflictCheck{})
}
