package config

import "errors"

// Platform identifiers understood by ValidatePlatform.
const (
	PlatformGitHub = "github"
	PlatformGitLab = "gitlab"
)

var errUnknownPlatform = errors.New("unknown platform")

// ErrUnknownPlatform is returned by ValidatePlatform for unsupported ids.
var ErrUnknownPlatform = errUnknownPlatform

// ValidatePlatform returns the first required field that is missing for the
// platform id, or "" when the platform is fully configured.
func (c *Config) ValidatePlatform(id string) (string, error) {
	switch id {
	case PlatformGitHub:
		switch {
		case c.GitHub.Owner == "":
			return "github.owner", nil
		case c.GitHub.Repo == "":
			return "github.repo", nil
		case c.GitHub.Token.IsEmpty():
			return "github.token", nil
		}
	case PlatformGitLab:
		switch {
		case c.GitLab.Project == "":
			return "gitlab.project", nil
		case c.GitLab.Token.IsEmpty():
			return "gitlab.token", nil
		}
	default:
		return "", errUnknownPlatform
	}
	return "", nil
}
