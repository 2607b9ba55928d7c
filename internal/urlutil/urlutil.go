// Package urlutil parses git remote URLs into host and repository path.
//
// Supported formats:
//   - HTTPS: https://github.com/owner/repo(.git)
//   - SSH colon: git@gitlab.com:group/subgroup/project(.git)
//   - SSH protocol: ssh://git@gitlab.example.com:2222/group/project(.git)
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var errInvalidRemoteURL = errors.New("invalid git remote URL")

// ErrInvalidRemoteURL is returned when a remote URL cannot be parsed.
var ErrInvalidRemoteURL = errInvalidRemoteURL

// Remote is a parsed git remote.
type Remote struct {
	Host string // Host without port or user
	Path string // Repository path without leading slash or .git suffix
}

// ParseRemote parses a git remote URL. The path keeps every namespace level,
// so GitLab subgroups survive ("group/subgroup/project").
func ParseRemote(raw string) (Remote, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Remote{}, fmt.Errorf("%w: empty", errInvalidRemoteURL)
	}

	var host, path string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Remote{}, fmt.Errorf("%w: %w", errInvalidRemoteURL, err)
		}
		host, path = u.Hostname(), u.Path
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		// scp-like syntax: user@host:path
		at := strings.Index(raw, "@")
		rest := raw[at+1:]
		colon := strings.Index(rest, ":")
		host, path = rest[:colon], rest[colon+1:]
	default:
		return Remote{}, fmt.Errorf("%w: %s", errInvalidRemoteURL, raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if host == "" || !strings.Contains(path, "/") {
		return Remote{}, fmt.Errorf("%w: %s", errInvalidRemoteURL, raw)
	}
	return Remote{Host: host, Path: path}, nil
}

// OwnerRepo splits a two-level path into GitHub's owner and repository names.
func (r Remote) OwnerRepo() (string, string, error) {
	parts := strings.Split(r.Path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected owner/repo, got %q", errInvalidRemoteURL, r.Path)
	}
	return parts[0], parts[1], nil
}
