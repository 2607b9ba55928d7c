// Package fixtures provides common test data structures for testing.
package fixtures

import ghpkg "github.com/sgaunet/release-sync/pkg/github"

// Test constants for GitHub fixtures.
const (
	DefaultGitHubReleaseID = 4242
	defaultGitHubURL       = "https://github.com/octo/widget/releases/tag/v1.0.0"
)

// ValidGitHubRelease returns a created GitHub release for testing.
func ValidGitHubRelease() *ghpkg.Release {
	return &ghpkg.Release{
		ID:      DefaultGitHubReleaseID,
		TagName: DefaultTag,
		HTMLURL: defaultGitHubURL,
	}
}

// GitHubReleaseWithoutID returns a release whose response carried no identifier.
func GitHubReleaseWithoutID() *ghpkg.Release {
	return &ghpkg.Release{TagName: DefaultTag}
}
