package gitlab

import (
	"github.com/sgaunet/bullets"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const (
	defaultBaseURL = "https://gitlab.com/api/v4"
	apiPathSuffix  = "/api/v4"
)

// Client represents a GitLab release API client bound to one project.
type Client struct {
	client     *gitlab.Client
	project    string
	projectURL string // web URL, resolved on first upload
	log        *bullets.Logger
}

// Options configures [NewClient].
type Options struct {
	Project string // "group/project" path or numeric ID
	Token   string
	BaseURL string // API URL, e.g. https://gitlab.example.com/api/v4
}

// Tag represents a repository tag.
type Tag struct {
	Name   string
	Commit string
}

// NewRelease holds the fields sent when creating a release.
// GitLab has no draft or prerelease attribute.
type NewRelease struct {
	TagName     string
	Name        string
	Description string
	Ref         string
}

// Release represents a GitLab release. GitLab identifies releases by tag name.
type Release struct {
	TagName string
	Name    string
	URL     string
}

// Link represents an asset link attached to a release.
type Link struct {
	ID   int64
	Name string
	URL  string
}
