package update

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/google/go-github/v81/github"
	"github.com/sirupsen/logrus"

	"prehook/internal/logging"
	"prehook/internal/pipeline"
)

// Change records one rev bump applied (or proposed, in dry-run) to the
// pipeline file.
type Change struct {
	Repo   string
	OldRev string
	NewRev string
}

type Updater struct {
	client *github.Client
	log    *logrus.Entry

	// latestRev is a test seam for tag resolution.
	// If nil, Updater queries the GitHub API.
	latestRev func(ctx context.Context, owner, repo string) (string, error)
}

func NewUpdater(client *github.Client) *Updater {
	return &Updater{
		client: client,
		log:    logging.NewLogger("update"),
	}
}

// Update rewrites path so every github.com hook source points at its latest
// tag. Local and builtin entries have no rev; non-GitHub sources are left
// unchanged and reported in notices. With dryRun the file is not written and
// the returned changes describe what would happen.
func (u *Updater) Update(ctx context.Context, path string, dryRun bool) (changes []Change, notices []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read pipeline: %w", err)
	}
	cfg, err := pipeline.LoadBytes(data)
	if err != nil {
		return nil, nil, err
	}

	updates := make(map[string]string)
	var resolveErrs []error
	for _, repo := range cfg.Repos {
		if !repo.IsRemote() {
			continue
		}
		owner, name, ok := parseGitHubSource(repo.Repo)
		if !ok {
			notices = append(notices, describeSource(repo.Repo))
			continue
		}

		latest, err := u.resolveLatest(ctx, owner, name)
		if err != nil {
			resolveErrs = append(resolveErrs, fmt.Errorf("%s: %w", repo.Repo, err))
			continue
		}
		if latest == repo.Rev {
			u.log.WithFields(logrus.Fields{"repo": repo.Repo, "rev": repo.Rev}).Debug("already at latest tag")
			continue
		}
		updates[repo.Repo] = latest
		changes = append(changes, Change{Repo: repo.Repo, OldRev: repo.Rev, NewRev: latest})
	}

	if len(updates) > 0 && !dryRun {
		rewritten, changed, err := rewriteRevs(data, updates)
		if err != nil {
			return nil, notices, err
		}
		if changed {
			if err := os.WriteFile(path, rewritten, 0o644); err != nil {
				return nil, notices, fmt.Errorf("write pipeline: %w", err)
			}
		}
	}

	return changes, notices, errors.Join(resolveErrs...)
}

// resolveLatest returns the newest tag for a repository: the tag of the
// latest published release when one exists, otherwise the most recent tag.
func (u *Updater) resolveLatest(ctx context.Context, owner, repo string) (string, error) {
	if u.latestRev != nil {
		return u.latestRev(ctx, owner, repo)
	}

	release, resp, err := u.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err == nil && release.GetTagName() != "" {
		return release.GetTagName(), nil
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return "", fmt.Errorf("latest release: %w", err)
	}

	tags, _, err := u.client.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return "", fmt.Errorf("list tags: %w", err)
	}
	if len(tags) == 0 {
		return "", errors.New("repository has no tags")
	}
	return tags[0].GetName(), nil
}
