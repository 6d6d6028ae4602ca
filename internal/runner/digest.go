package runner

import (
	"crypto/sha256"
	"os"
)

// fileDigests maps each path to a content digest. Unreadable or missing
// files get the zero digest, so a hook that deletes or creates one of its
// files still registers as a modification.
func fileDigests(files []string) map[string][sha256.Size]byte {
	digests := make(map[string][sha256.Size]byte, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			digests[f] = [sha256.Size]byte{}
			continue
		}
		digests[f] = sha256.Sum256(data)
	}
	return digests
}

// digestsDiffer reports whether any file's digest changed between snapshots.
func digestsDiffer(before, after map[string][sha256.Size]byte) bool {
	for path, b := range before {
		if after[path] != b {
			return true
		}
	}
	return false
}
