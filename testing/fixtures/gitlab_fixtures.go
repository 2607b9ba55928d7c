package fixtures

import glpkg "github.com/sgaunet/release-sync/pkg/gitlab"

const defaultGitLabURL = "https://gitlab.com/group/widget/-/releases/v1.0.0"

// ValidGitLabRelease returns a GitLab release as returned by the lookup call.
func ValidGitLabRelease() *glpkg.Release {
	return &glpkg.Release{
		TagName: DefaultTag,
		Name:    DefaultName,
		URL:     defaultGitLabURL,
	}
}

// GitLabReleaseWithoutID returns a lookup response with no tag name.
func GitLabReleaseWithoutID() *glpkg.Release {
	return &glpkg.Release{Name: DefaultName}
}
