// Package store caches hook source checkouts. Each remote source pinned in
// the pipeline is cloned once at its revision into a content-addressed
// directory under the user cache dir and reused across runs. Concurrent
// requests for the same source@rev share a single clone.
package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"prehook/internal/command"
	"prehook/internal/logging"

	"github.com/sirupsen/logrus"
)

// readyMarker is written after a checkout completes; a directory without it
// is a dead partial clone and gets rebuilt.
const readyMarker = ".prehook-ready"

// ResolutionError reports a hook source that could not be materialized at its
// pinned revision. It is fatal for the hooks of that source only.
type ResolutionError struct {
	Repo string
	Rev  string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve hook source %s at %s: %v", e.Repo, e.Rev, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

type Store struct {
	root string
	exec command.Executor
	sf   singleflight.Group
	log  *logrus.Entry
}

// DefaultRoot returns the per-user checkout cache directory.
func DefaultRoot() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache dir: %w", err)
	}
	return filepath.Join(base, "prehook", "repos"), nil
}

func New(root string) *Store {
	return NewWithExecutor(root, command.RealExecutor{})
}

func NewWithExecutor(root string, e command.Executor) *Store {
	return &Store{
		root: root,
		exec: e,
		log:  logging.NewLogger("store"),
	}
}

// Checkout returns the directory holding repo at rev, cloning on first use.
// Concurrent calls for the same repo@rev are deduplicated.
func (s *Store) Checkout(ctx context.Context, repo, rev string) (string, error) {
	key := repo + "@" + rev
	v, err, shared := s.sf.Do(key, func() (any, error) {
		return s.checkout(ctx, repo, rev)
	})
	if err != nil {
		return "", err
	}
	if shared {
		s.log.WithField("source", key).Debug("checkout shared with concurrent caller")
	}
	return v.(string), nil
}

func (s *Store) checkout(ctx context.Context, repo, rev string) (string, error) {
	sum := sha256.Sum256([]byte(repo + "@" + rev))
	dir := filepath.Join(s.root, fmt.Sprintf("%x", sum[:10]))

	if _, err := os.Stat(filepath.Join(dir, readyMarker)); err == nil {
		s.log.WithField("dir", dir).Debug("checkout cache hit")
		return dir, nil
	}

	// A directory without the marker is a leftover from an interrupted
	// clone; rebuild it.
	if err := os.RemoveAll(dir); err != nil {
		return "", &ResolutionError{Repo: repo, Rev: rev, Err: err}
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", &ResolutionError{Repo: repo, Rev: rev, Err: err}
	}

	s.log.WithFields(logrus.Fields{"repo": repo, "rev": rev}).Debug("cloning hook source")

	if err := s.git(ctx, "clone", "--quiet", repo, dir); err != nil {
		return "", &ResolutionError{Repo: repo, Rev: rev, Err: err}
	}
	if err := s.git(ctx, "-C", dir, "-c", "advice.detachedHead=false", "checkout", "--quiet", rev); err != nil {
		os.RemoveAll(dir)
		return "", &ResolutionError{Repo: repo, Rev: rev, Err: err}
	}

	if err := os.WriteFile(filepath.Join(dir, readyMarker), []byte(repo+"@"+rev+"\n"), 0o644); err != nil {
		return "", &ResolutionError{Repo: repo, Rev: rev, Err: err}
	}
	return dir, nil
}

func (s *Store) git(ctx context.Context, args ...string) error {
	cmd := s.exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := string(out)
		if msg == "" {
			return fmt.Errorf("git %v: %w", args, err)
		}
		return fmt.Errorf("git %v: %s", args, msg)
	}
	return nil
}
