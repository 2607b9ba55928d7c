package gitlab

import "context"

// APIClient defines the GitLab operations used by the reconciling publish adapter.
type APIClient interface {
	// ProbeTag looks the tag up by name.
	// Returns ErrTagNotFound only on an explicit 404; any other error means
	// the existence of the tag could not be determined.
	ProbeTag(ctx context.Context, tag string) (*Tag, error)

	// CreateTag creates tag pointing at ref (branch name or commit SHA).
	CreateTag(ctx context.Context, tag, ref string) (*Tag, error)

	// CreateRelease creates a release for an existing tag.
	CreateRelease(ctx context.Context, release NewRelease) error

	// GetReleaseByTag fetches the release attached to tag.
	GetReleaseByTag(ctx context.Context, tag string) (*Release, error)

	// UploadAsset uploads content to the project and links it to the release of tag.
	UploadAsset(ctx context.Context, tag, name string, content []byte) (*Link, error)
}

// Ensure Client implements APIClient interface at compile time.
var _ APIClient = (*Client)(nil)
