package platform

import (
	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/pkg/config"
	ghclient "github.com/sgaunet/release-sync/pkg/github"
	"github.com/sgaunet/release-sync/pkg/gitlab"
)

// Factory builds a Publisher from validated configuration.
type Factory func(cfg *config.Config, log *bullets.Logger) (Publisher, error)

// DefaultFactories returns the factories backed by the real platform APIs.
func DefaultFactories() map[Platform]Factory {
	return map[Platform]Factory{
		GitHub: newGitHubPublisher,
		GitLab: newGitLabPublisher,
	}
}

//nolint:ireturn // Matches the Factory signature.
func newGitHubPublisher(cfg *config.Config, log *bullets.Logger) (Publisher, error) {
	client, err := ghclient.NewClient(ghclient.Options{
		Owner:     cfg.GitHub.Owner,
		Repo:      cfg.GitHub.Repo,
		Token:     cfg.GitHub.Token.Value(),
		APIURL:    cfg.GitHub.APIURL,
		UploadURL: cfg.GitHub.UploadURL,
	})
	if err != nil {
		return nil, err
	}
	client.SetLogger(log)
	return NewGitHubAdapter(client, SettingsFromConfig(cfg), log), nil
}

//nolint:ireturn // Matches the Factory signature.
func newGitLabPublisher(cfg *config.Config, log *bullets.Logger) (Publisher, error) {
	client, err := gitlab.NewClient(gitlab.Options{
		Project: cfg.GitLab.Project,
		Token:   cfg.GitLab.Token.Value(),
		BaseURL: cfg.GitLab.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	client.SetLogger(log)
	return NewGitLabAdapter(client, SettingsFromConfig(cfg), log), nil
}
