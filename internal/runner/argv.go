package runner

import (
	"fmt"
	"strings"
)

// maxArgvChunk bounds the byte length of the file arguments appended to one
// hook invocation. Larger selections are split into several invocations,
// xargs style, and the worst exit code wins.
const maxArgvChunk = 32 * 1024

// splitEntry tokenizes a hook entry command. Entries are simple enough that
// only whitespace splitting plus single/double quoting is supported; shell
// operators are passed through as literal arguments.
func splitEntry(entry string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote rune
	inToken := false

	for _, r := range entry {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unbalanced quote in entry %q", entry)
	}
	if inToken {
		args = append(args, cur.String())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty entry")
	}
	return args, nil
}

// chunkFiles partitions files so each chunk's joined length stays under
// maxArgvChunk. Every chunk holds at least one file.
func chunkFiles(files []string) [][]string {
	if len(files) == 0 {
		return nil
	}
	var chunks [][]string
	var cur []string
	size := 0
	for _, f := range files {
		if len(cur) > 0 && size+len(f)+1 > maxArgvChunk {
			chunks = append(chunks, cur)
			cur = nil
			size = 0
		}
		cur = append(cur, f)
		size += len(f) + 1
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}
