package builtin

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"prehook/internal/hooks"
)

const defaultMaxKB = 500

type LargeFilesCheck struct{}

func (c *LargeFilesCheck) ID() string {
	return "check-added-large-files"
}

func (c *LargeFilesCheck) Name() string {
	return "Check for Added Large Files"
}

func (c *LargeFilesCheck) Description() string {
	return "Fails when any checked file exceeds a size limit. The limit defaults to 500 KB and is set with --maxkb=N."
}

func (c *LargeFilesCheck) Run(ctx context.Context, args []string, files []string) (string, int, error) {
	maxKB, err := parseMaxKB(args)
	if err != nil {
		return "", 0, err
	}

	var out strings.Builder
	code := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return out.String(), code, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return out.String(), code, fmt.Errorf("stat %s: %w", path, err)
		}
		sizeKB := info.Size() / 1024
		if sizeKB > maxKB {
			fmt.Fprintf(&out, "%s (%d KB) exceeds %d KB\n", path, sizeKB, maxKB)
			code = 1
		}
	}

	return out.String(), code, nil
}

func parseMaxKB(args []string) (int64, error) {
	maxKB := int64(defaultMaxKB)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var raw string
		switch {
		case strings.HasPrefix(arg, "--maxkb="):
			raw = strings.TrimPrefix(arg, "--maxkb=")
		case arg == "--maxkb" && i+1 < len(args):
			i++
			raw = args[i]
		default:
			continue
		}
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return 0, fmt.Errorf("invalid --maxkb value %q", raw)
		}
		maxKB = parsed
	}
	return maxKB, nil
}

func init() {
	hooks.Register(&LargeFilesCheck{})
}
