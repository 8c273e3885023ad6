package gitremote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/pkgprovision/internal/domain/repositories"
)

const originRemote = "origin"

// GitOriginRepository reads the "origin" remote of a local working copy with go-git.
type GitOriginRepository struct {
	hostname string
}

// NewGitOriginRepository creates an origin reader for github.com remotes.
func NewGitOriginRepository() repositories.OriginRepository {
	return &GitOriginRepository{hostname: "github.com"}
}

// DetectOwner returns the owner segment of the origin URL of the repository containing dir.
func (r *GitOriginRepository) DetectOwner(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", originRemote)
	}

	owner, _, err := ParseRemoteURL(urls[0], r.hostname)
	return owner, err
}

// ParseRemoteURL extracts owner and repository name from a remote URL:
//
//	HTTPS: https://{host}/{owner}/{repo}[.git]
//	SSH:   git@{host}:{owner}/{repo}[.git]
func ParseRemoteURL(rawURL, hostname string) (string, string, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), ".git")
	if !strings.Contains(cleaned, hostname) {
		return "", "", fmt.Errorf("unsupported git remote URL: %s", rawURL)
	}

	var pathPart string
	if strings.HasPrefix(cleaned, "git@") {
		_, after, ok := strings.Cut(cleaned, ":")
		if !ok {
			return "", "", fmt.Errorf("invalid SSH URL: %s", rawURL)
		}
		pathPart = after
	} else {
		_, after, _ := strings.Cut(cleaned, hostname)
		pathPart = strings.TrimPrefix(after, "/")
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" { //nolint:mnd // need owner + repo
		return "", "", errors.New("cannot extract owner/repo from URL: " + rawURL)
	}

	return segments[0], segments[1], nil
}
