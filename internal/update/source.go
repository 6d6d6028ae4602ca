package update

import (
	"fmt"
	"strings"
)

// parseGitHubSource extracts owner and repo from a hook source URI when it
// points at github.com. Sources elsewhere (other forges, bare paths) are not
// updatable through the API and report ok=false.
func parseGitHubSource(source string) (owner, repo string, ok bool) {
	s := strings.TrimSuffix(source, ".git")

	switch {
	case strings.HasPrefix(s, "https://github.com/"):
		s = strings.TrimPrefix(s, "https://github.com/")
	case strings.HasPrefix(s, "http://github.com/"):
		s = strings.TrimPrefix(s, "http://github.com/")
	case strings.HasPrefix(s, "git@github.com:"):
		s = strings.TrimPrefix(s, "git@github.com:")
	case strings.HasPrefix(s, "ssh://git@github.com/"):
		s = strings.TrimPrefix(s, "ssh://git@github.com/")
	default:
		return "", "", false
	}

	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// describeSource is used in notices for sources that cannot be updated.
func describeSource(source string) string {
	return fmt.Sprintf("%s (not a github.com source; left unchanged)", source)
}
