package github

import (
	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/bullets"
)

// Constants for GitHub API operations.
const (
	defaultMediaType    = "application/octet-stream"
	errCodeAlreadyExist = "already_exists"
)

// Client is a GitHub release API client bound to one repository.
type Client struct {
	client *github.Client
	owner  string
	repo   string
	log    *bullets.Logger
}

// Options configures [NewClient].
type Options struct {
	Owner     string
	Repo      string
	Token     string
	APIURL    string // GitHub Enterprise API URL; empty for github.com
	UploadURL string // GitHub Enterprise upload URL; defaults to APIURL
}

// Release is the subset of a GitHub release used by release-sync.
type Release struct {
	ID      int64
	TagName string
	HTMLURL string
	Draft   bool
}

// NewRelease holds the fields sent when creating a release.
type NewRelease struct {
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// Asset is an uploaded release asset.
type Asset struct {
	ID          int64
	Name        string
	Size        int
	DownloadURL string
}

func releaseFromAPI(r *github.RepositoryRelease) *Release {
	return &Release{
		ID:      r.GetID(),
		TagName: r.GetTagName(),
		HTMLURL: r.GetHTMLURL(),
		Draft:   r.GetDraft(),
	}
}
