// Package gitlab provides the GitLab release API client used by release-sync.
package gitlab

import (
	"fmt"
	"strings"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/internal/security"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// NewClient creates a new GitLab client for a project.
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, errTokenRequired
	}
	if opts.Project == "" {
		return nil, errProjectRequired
	}

	client, err := gitlab.NewClient(opts.Token, gitlab.WithBaseURL(NormalizeBaseURL(opts.BaseURL)))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &Client{
		client:  client,
		project: opts.Project,
		log:     logger.NoLogger(),
	}, nil
}

// SetLogger sets the logger for the GitLab client.
func (c *Client) SetLogger(log *bullets.Logger) {
	c.log = log
	security.DebugAuth(log, "GitLab", map[string]string{
		"project":  c.project,
		"base_url": c.client.BaseURL().String(),
		"token":    "set",
	})
}

// Project returns the configured project path or ID.
func (c *Client) Project() string {
	return c.project
}

// NormalizeBaseURL turns a GitLab host URL into its REST API URL.
// "https://gitlab.example.com" and "https://gitlab.example.com/api/v4/" both
// become "https://gitlab.example.com/api/v4". Empty input selects gitlab.com.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return defaultBaseURL
	}
	if strings.HasSuffix(raw, apiPathSuffix) {
		return raw
	}
	return raw + apiPathSuffix
}
