// Package github provides the GitHub release API client used by release-sync.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/internal/security"
	"golang.org/x/oauth2"
)

// NewClient creates a GitHub client authenticated with a static token.
// No request is made until a release operation is called.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, errTokenRequired
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errRepositoryRequired
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	client := github.NewClient(oauth2.NewClient(context.Background(), ts))

	if opts.APIURL != "" {
		uploadURL := opts.UploadURL
		if uploadURL == "" {
			uploadURL = opts.APIURL
		}
		var err error
		client, err = client.WithEnterpriseURLs(opts.APIURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub Enterprise URLs: %w", err)
		}
	}

	c := &Client{
		client: client,
		owner:  opts.Owner,
		repo:   opts.Repo,
		log:    logger.NoLogger(),
	}
	return c, nil
}

// SetLogger sets the logger for the GitHub client.
func (c *Client) SetLogger(log *bullets.Logger) {
	c.log = log
	security.DebugAuth(log, "GitHub", map[string]string{
		"repository": c.owner + "/" + c.repo,
		"api_url":    c.client.BaseURL.String(),
		"token":      "set",
	})
}

// Repository returns "owner/repo".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}
