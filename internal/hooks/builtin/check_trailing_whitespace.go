package builtin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"prehook/internal/hooks"
)

type TrailingWhitespaceCheck struct{}

func (c *TrailingWhitespaceCheck) ID() string {
	return "trailing-whitespace"
}

func (c *TrailingWhitespaceCheck) Name() string {
	return "Trim Trailing Whitespace"
}

func (c *TrailingWhitespaceCheck) Description() string {
	return "Trims trailing whitespace from each line. Files are rewritten in place; the check exits non-zero when it had to fix anything."
}

// Types restricts the default selection to text files.
func (c *TrailingWhitespaceCheck) Types() []string {
	return []string{"text"}
}

func (c *TrailingWhitespaceCheck) Run(ctx context.Context, args []string, files []string) (string, int, error) {
	var out strings.Builder
	code := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return out.String(), code, err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return out.String(), code, fmt.Errorf("read %s: %w", path, err)
		}

		fixed := trimTrailingWhitespace(data)
		if bytes.Equal(fixed, data) {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return out.String(), code, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
			return out.String(), code, fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(&out, "Fixing %s\n", path)
		code = 1
	}

	return out.String(), code, nil
}

func trimTrailingWhitespace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		// Keep CRLF endings intact; only spaces and tabs are trimmed.
		crlf := bytes.HasSuffix(line, []byte("\r"))
		line = bytes.TrimRight(line, " \t\r")
		if crlf {
			line = append(line, '\r')
		}
		lines[i] = line
	}
	return bytes.Join(lines, []byte("\n"))
}

func init() {
	hooks.Register(&TrailingWhitespaceCheck{})
}
