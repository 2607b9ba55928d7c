package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/google/go-github/v69/github"
)

// CreateRelease creates a release with one API call. A missing tag is created
// by GitHub from the repository's default branch.
func (c *Client) CreateRelease(ctx context.Context, release NewRelease) (*Release, error) {
	c.log.Debug(fmt.Sprintf("Creating GitHub release %s in %s", release.TagName, c.Repository()))

	req := &github.RepositoryRelease{
		TagName:    github.Ptr(release.TagName),
		Name:       github.Ptr(release.Name),
		Body:       github.Ptr(release.Body),
		Draft:      github.Ptr(release.Draft),
		Prerelease: github.Ptr(release.Prerelease),
	}

	created, _, err := c.client.Repositories.CreateRelease(ctx, c.owner, c.repo, req)
	if err != nil {
		if isAlreadyExists(err) {
			return nil, fmt.Errorf("%w: %s", errReleaseExists, release.TagName)
		}
		return nil, fmt.Errorf("failed to create release %s: %w", release.TagName, err)
	}

	c.log.Debug(fmt.Sprintf("GitHub release created - ID: %d, URL: %s", created.GetID(), created.GetHTMLURL()))
	return releaseFromAPI(created), nil
}

// GetReleaseByTag fetches the release for tag. Draft releases are not visible
// through this endpoint.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	release, _, err := c.client.Repositories.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", errReleaseNotFound, tag)
		}
		return nil, fmt.Errorf("failed to get release %s: %w", tag, err)
	}
	return releaseFromAPI(release), nil
}

// UploadAsset uploads raw content as a release asset named name.
func (c *Client) UploadAsset(ctx context.Context, releaseID int64, name string, content []byte) (*Asset, error) {
	u := fmt.Sprintf("repos/%s/%s/releases/%d/assets?name=%s",
		c.owner, c.repo, releaseID, url.QueryEscape(name))

	req, err := c.client.NewUploadRequest(u, bytes.NewReader(content), int64(len(content)), mediaType(name))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request for %s: %w", name, err)
	}

	asset := new(github.ReleaseAsset)
	if _, err := c.client.Do(ctx, req, asset); err != nil {
		return nil, fmt.Errorf("failed to upload asset %s: %w", name, err)
	}

	c.log.Debug(fmt.Sprintf("Asset uploaded - ID: %d, name: %s", asset.GetID(), asset.GetName()))
	return &Asset{
		ID:          asset.GetID(),
		Name:        asset.GetName(),
		Size:        asset.GetSize(),
		DownloadURL: asset.GetBrowserDownloadURL(),
	}, nil
}

// mediaType guesses the content type from the file extension.
func mediaType(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return defaultMediaType
}

// isAlreadyExists reports whether err is GitHub's 422 "already_exists" validation error.
func isAlreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}
	if ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range ghErr.Errors {
		if e.Code == errCodeAlreadyExist {
			return true
		}
	}
	return false
}

func isStatus(err error, status int) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == status
}
