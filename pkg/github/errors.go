package github

import "errors"

// Error definitions for GitHub API operations.
var (
	errTokenRequired      = errors.New("GitHub token is required")
	errRepositoryRequired = errors.New("GitHub owner and repository are required")
	errReleaseExists      = errors.New("a GitHub release already exists for this tag")
	errReleaseNotFound    = errors.New("no GitHub release found for tag")

	// ErrTokenRequired is returned when no token is configured.
	ErrTokenRequired = errTokenRequired
	// ErrRepositoryRequired is returned when owner or repository is empty.
	ErrRepositoryRequired = errRepositoryRequired
	// ErrReleaseExists is returned when release creation fails because the tag already has a release.
	ErrReleaseExists = errReleaseExists
	// ErrReleaseNotFound is returned when no release exists for a tag.
	ErrReleaseNotFound = errReleaseNotFound
)
