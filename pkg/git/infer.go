package git

import (
	"fmt"

	"github.com/sgaunet/release-sync/pkg/config"
)

const (
	publicGitHubHost = "github.com"
	publicGitLabHost = "gitlab.com"
)

// InferConfig fills platform identity left empty in cfg from the origin remote.
// When inferTarget is set, the current branch also becomes the target.
// It returns the config keys it filled; values already set are never replaced.
func (r *Repository) InferConfig(cfg *config.Config, inferTarget bool) ([]string, error) {
	remote, err := r.Origin()
	if err != nil {
		return nil, err
	}

	id, err := DetectPlatform(remote)
	if err != nil {
		return nil, err
	}

	var filled []string
	switch id {
	case config.PlatformGitHub:
		if cfg.GitHub.Owner == "" && cfg.GitHub.Repo == "" {
			owner, repo, err := remote.OwnerRepo()
			if err != nil {
				return nil, err
			}
			cfg.GitHub.Owner, cfg.GitHub.Repo = owner, repo
			filled = append(filled, "github.owner", "github.repo")
		}
		if cfg.GitHub.APIURL == "" && remote.Host != publicGitHubHost {
			cfg.GitHub.APIURL = fmt.Sprintf("https://%s/api/v3/", remote.Host)
			filled = append(filled, "github.api_url")
		}
	case config.PlatformGitLab:
		if cfg.GitLab.Project == "" {
			cfg.GitLab.Project = remote.Path
			filled = append(filled, "gitlab.project")
		}
		if cfg.GitLab.BaseURL == "" && remote.Host != publicGitLabHost {
			cfg.GitLab.BaseURL = "https://" + remote.Host
			filled = append(filled, "gitlab.base_url")
		}
	}

	if inferTarget {
		if branch, err := r.CurrentBranch(); err == nil {
			cfg.Target = branch
			filled = append(filled, "target")
		}
	}

	return filled, nil
}
