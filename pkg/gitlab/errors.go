package gitlab

import "errors"

// Error definitions for GitLab API operations.
var (
	errTokenRequired   = errors.New("GitLab token is required")
	errProjectRequired = errors.New("GitLab project is required")
	errTagNotFound     = errors.New("tag not found")
	errTagExists       = errors.New("tag already exists")
	errReleaseExists   = errors.New("a GitLab release already exists for this tag")
	errReleaseNotFound = errors.New("no GitLab release found for tag")

	// ErrTokenRequired is returned when no token is configured.
	ErrTokenRequired = errTokenRequired
	// ErrProjectRequired is returned when the project is empty.
	ErrProjectRequired = errProjectRequired
	// ErrTagNotFound is returned by ProbeTag when the tag does not exist.
	ErrTagNotFound = errTagNotFound
	// ErrTagExists is returned by CreateTag when the tag is already present.
	ErrTagExists = errTagExists
	// ErrReleaseExists is returned by CreateRelease when the tag already has a release.
	ErrReleaseExists = errReleaseExists
	// ErrReleaseNotFound is returned when no release exists for a tag.
	ErrReleaseNotFound = errReleaseNotFound
)
