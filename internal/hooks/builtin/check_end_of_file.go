package builtin

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"prehook/internal/hooks"
)

type EndOfFileCheck struct{}

func (c *EndOfFileCheck) ID() string {
	return "end-of-file-fixer"
}

func (c *EndOfFileCheck) Name() string {
	return "Fix End of Files"
}

func (c *EndOfFileCheck) Description() string {
	return "Ensures files end in exactly one newline. Files are rewritten in place; the check exits non-zero when it had to fix anything."
}

// Types restricts the default selection to text files.
func (c *EndOfFileCheck) Types() []string {
	return []string{"text"}
}

func (c *EndOfFileCheck) Run(ctx context.Context, args []string, files []string) (string, int, error) {
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
		if len(data) == 0 {
			// Empty files stay empty.
			continue
		}

		fixed := append(bytes.TrimRight(data, "\n"), '\n')
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

func init() {
	hooks.Register(&EndOfFileCheck{})
}
