// Package git reads repository identity from a local git checkout.
// It never writes to the repository or talks to remotes.
package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sgaunet/release-sync/internal/urlutil"
	"github.com/sgaunet/release-sync/pkg/config"
)

// DefaultRemote is the remote used for inference.
const DefaultRemote = "origin"

var (
	errNoRemoteURL     = errors.New("no URLs found for remote")
	errDetachedHead    = errors.New("HEAD is not pointing to a branch")
	errUnknownPlatform = errors.New("repository is not hosted on GitLab or GitHub")

	// ErrUnknownPlatform is returned by DetectPlatform for other hosts.
	ErrUnknownPlatform = errUnknownPlatform
	// ErrDetachedHead is returned by CurrentBranch on a detached HEAD.
	ErrDetachedHead = errDetachedHead
)

// Repository wraps a go-git repository.
type Repository struct {
	repo *git.Repository
}

// OpenRepository opens the repository containing path, searching parent directories.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{repo: repo}, nil
}

// RemoteURL returns the first URL of the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", errNoRemoteURL, name)
	}

	return urls[0], nil
}

// Origin returns the parsed origin remote.
func (r *Repository) Origin() (urlutil.Remote, error) {
	raw, err := r.RemoteURL(DefaultRemote)
	if err != nil {
		return urlutil.Remote{}, err
	}
	remote, err := urlutil.ParseRemote(raw)
	if err != nil {
		return urlutil.Remote{}, fmt.Errorf("failed to parse %s URL: %w", DefaultRemote, err)
	}
	return remote, nil
}

// CurrentBranch returns the short name of the checked out branch.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", errDetachedHead
	}

	return head.Name().Short(), nil
}

// TagExists reports whether tag exists in the local repository.
func (r *Repository) TagExists(tag string) bool {
	_, err := r.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	return err == nil
}

// DetectPlatform returns "github" or "gitlab" from the remote host name.
// Self-hosted instances are recognized when the host name contains the platform name.
func DetectPlatform(remote urlutil.Remote) (string, error) {
	host := strings.ToLower(remote.Host)
	switch {
	case strings.Contains(host, "gitlab"):
		return config.PlatformGitLab, nil
	case strings.Contains(host, "github"):
		return config.PlatformGitHub, nil
	default:
		return "", fmt.Errorf("%w: %s", errUnknownPlatform, remote.Host)
	}
}
