package gitlab

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// ProbeTag looks a tag up by name. A 404 is reported as ErrTagNotFound.
func (c *Client) ProbeTag(ctx context.Context, tag string) (*Tag, error) {
	t, resp, err := c.client.Tags.GetTag(c.project, tag, gitlab.WithContext(ctx))
	if err != nil {
		if hasStatus(resp, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", errTagNotFound, tag)
		}
		return nil, fmt.Errorf("failed to get tag %s: %w", tag, err)
	}

	return tagFromAPI(t), nil
}

// CreateTag creates tag at ref.
func (c *Client) CreateTag(ctx context.Context, tag, ref string) (*Tag, error) {
	c.log.Debug(fmt.Sprintf("Creating GitLab tag %s at %s", tag, ref))

	t, resp, err := c.client.Tags.CreateTag(c.project, &gitlab.CreateTagOptions{
		TagName: gitlab.Ptr(tag),
		Ref:     gitlab.Ptr(ref),
	}, gitlab.WithContext(ctx))
	if err != nil {
		if hasStatus(resp, http.StatusBadRequest) && strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("%w: %s", errTagExists, tag)
		}
		return nil, fmt.Errorf("failed to create tag %s: %w", tag, err)
	}

	return tagFromAPI(t), nil
}

// CreateRelease creates a release for release.TagName.
// The response is not used: GitLab release links are addressed by tag.
func (c *Client) CreateRelease(ctx context.Context, release NewRelease) error {
	c.log.Debug(fmt.Sprintf("Creating GitLab release %s in %s", release.TagName, c.project))

	opts := &gitlab.CreateReleaseOptions{
		Name:        gitlab.Ptr(release.Name),
		TagName:     gitlab.Ptr(release.TagName),
		Description: gitlab.Ptr(release.Description),
	}
	if release.Ref != "" {
		opts.Ref = gitlab.Ptr(release.Ref)
	}

	_, resp, err := c.client.Releases.CreateRelease(c.project, opts, gitlab.WithContext(ctx))
	if err != nil {
		if hasStatus(resp, http.StatusConflict) {
			return fmt.Errorf("%w: %s", errReleaseExists, release.TagName)
		}
		return fmt.Errorf("failed to create release %s: %w", release.TagName, err)
	}
	return nil
}

// GetReleaseByTag fetches the release attached to tag.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	r, resp, err := c.client.Releases.GetRelease(c.project, tag, gitlab.WithContext(ctx))
	if err != nil {
		if hasStatus(resp, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", errReleaseNotFound, tag)
		}
		return nil, fmt.Errorf("failed to get release %s: %w", tag, err)
	}

	return &Release{
		TagName: r.TagName,
		Name:    r.Name,
		URL:     r.Links.Self,
	}, nil
}

// UploadAsset uploads content as a project file, then attaches it to the
// release of tag as a link named name.
func (c *Client) UploadAsset(ctx context.Context, tag, name string, content []byte) (*Link, error) {
	projectURL, err := c.webURL(ctx)
	if err != nil {
		return nil, err
	}

	file, _, err := c.client.ProjectMarkdownUploads.UploadProjectMarkdown(c.project, bytes.NewReader(content), name, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", name, err)
	}
	c.log.Debug(fmt.Sprintf("File uploaded to project: %s", file.URL))

	link, _, err := c.client.ReleaseLinks.CreateReleaseLink(c.project, tag, &gitlab.CreateReleaseLinkOptions{
		Name: gitlab.Ptr(name),
		URL:  gitlab.Ptr(projectURL + file.URL),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to link %s to release %s: %w", name, tag, err)
	}

	return &Link{
		ID:   int64(link.ID),
		Name: link.Name,
		URL:  link.URL,
	}, nil
}

// webURL returns the project web URL, used to turn upload paths into absolute links.
func (c *Client) webURL(ctx context.Context) (string, error) {
	if c.projectURL != "" {
		return c.projectURL, nil
	}

	project, _, err := c.client.Projects.GetProject(c.project, nil, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get project information: %w", err)
	}

	c.projectURL = strings.TrimRight(project.WebURL, "/")
	return c.projectURL, nil
}

func tagFromAPI(t *gitlab.Tag) *Tag {
	tag := &Tag{Name: t.Name}
	if t.Commit != nil {
		tag.Commit = t.Commit.ID
	}
	return tag
}

func hasStatus(resp *gitlab.Response, status int) bool {
	return resp != nil && resp.Response != nil && resp.StatusCode == status
}
