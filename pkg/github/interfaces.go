package github

import "context"

// APIClient defines the GitHub release operations used by the publish adapter.
// It lets tests replace the real API with a call-tracking mock.
type APIClient interface {
	// CreateRelease creates a release for a tag in a single call.
	// Returns ErrReleaseExists if GitHub rejects the tag as a duplicate.
	CreateRelease(ctx context.Context, release NewRelease) (*Release, error)

	// GetReleaseByTag fetches the release published for tag.
	// Returns ErrReleaseNotFound if there is none.
	GetReleaseByTag(ctx context.Context, tag string) (*Release, error)

	// UploadAsset uploads content under name to the release identified by releaseID.
	UploadAsset(ctx context.Context, releaseID int64, name string, content []byte) (*Asset, error)
}

// Ensure Client implements APIClient interface at compile time.
var _ APIClient = (*Client)(nil)
