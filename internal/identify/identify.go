// Package identify classifies file paths into type tags used by hook
// type filters (types, types_or, exclude_types). Classification is name-based:
// extension first, then well-known basenames. Every path carries the "file"
// tag; paths with a recognized textual type additionally carry "text".
package identify

import (
	"path/filepath"
	"strings"
)

var extensionTags = map[string][]string{
	".bash":  {"shell", "bash"},
	".c":     {"c"},
	".cc":    {"c++"},
	".cfg":   {"ini"},
	".cpp":   {"c++"},
	".css":   {"css"},
	".csv":   {"csv"},
	".go":    {"go"},
	".h":     {"c", "header"},
	".hpp":   {"c++", "header"},
	".html":  {"html"},
	".ini":   {"ini"},
	".java":  {"java"},
	".js":    {"javascript"},
	".json":  {"json"},
	".jsx":   {"jsx", "javascript"},
	".lua":   {"lua"},
	".md":    {"markdown"},
	".mod":   {"go-mod"},
	".php":   {"php"},
	".proto": {"proto"},
	".py":    {"python"},
	".pyi":   {"pyi", "python"},
	".rb":    {"ruby"},
	".rs":    {"rust"},
	".sh":    {"shell"},
	".sql":   {"sql"},
	".sum":   {"go-sum"},
	".svg":   {"svg", "xml"},
	".tf":    {"terraform"},
	".toml":  {"toml"},
	".ts":    {"ts", "typescript"},
	".tsx":   {"tsx", "typescript"},
	".txt":   {"plain-text"},
	".xml":   {"xml"},
	".yaml":  {"yaml"},
	".yml":   {"yaml"},
	".zsh":   {"shell", "zsh"},
}

// Extensions commonly holding binary payloads. These never get the "text" tag.
var binaryExtensions = map[string][]string{
	".gif":  {"gif", "image"},
	".gz":   {"gzip"},
	".ico":  {"icon", "image"},
	".jpeg": {"jpeg", "image"},
	".jpg":  {"jpeg", "image"},
	".pdf":  {"pdf"},
	".png":  {"png", "image"},
	".tar":  {"tar"},
	".webp": {"webp", "image"},
	".whl":  {"wheel"},
	".zip":  {"zip"},
}

var basenameTags = map[string][]string{
	".gitignore":     {"gitignore"},
	".gitattributes": {"gitattributes"},
	"Dockerfile":     {"dockerfile"},
	"Makefile":       {"makefile"},
	"makefile":       {"makefile"},
	"go.mod":         {"go-mod"},
	"go.sum":         {"go-sum"},
}

// Tags returns the type tags for a path, sorted order not guaranteed.
// The result always contains "file".
func Tags(path string) []string {
	tags := []string{"file"}

	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	if named, ok := basenameTags[base]; ok {
		tags = append(tags, "text")
		tags = append(tags, named...)
		return tags
	}
	if byExt, ok := extensionTags[ext]; ok {
		tags = append(tags, "text")
		tags = append(tags, byExt...)
		return tags
	}
	if byExt, ok := binaryExtensions[ext]; ok {
		tags = append(tags, "binary")
		tags = append(tags, byExt...)
		return tags
	}

	// Unknown extension: assume text. Hooks that must not touch binaries can
	// exclude by the specific binary tags above.
	tags = append(tags, "text")
	return tags
}

// HasAll reports whether the path's tags contain every tag in want.
// An empty want matches everything.
func HasAll(path string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := tagSet(path)
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// HasAny reports whether the path's tags contain at least one tag in want.
// An empty want matches everything.
func HasAny(path string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := tagSet(path)
	for _, w := range want {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func tagSet(path string) map[string]struct{} {
	tags := Tags(path)
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
