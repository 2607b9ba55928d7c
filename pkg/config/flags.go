package config

import (
	"github.com/sgaunet/release-sync/internal/security"
	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and MergeFlags.
const (
	FlagTarget        = "target"
	FlagGitHubOwner   = "github-owner"
	FlagGitHubRepo    = "github-repo"
	FlagGitHubToken   = "github-token"
	FlagGitHubAPIURL  = "github-api-url"
	FlagGitHubUpload  = "github-upload-url"
	FlagGitLabProject = "gitlab-project"
	FlagGitLabToken   = "gitlab-token"
	FlagGitLabURL     = "gitlab-url"
	FlagReuseExisting = "reuse-existing"
	FlagProbeRetries  = "probe-retries"
	FlagProbeTimeout  = "probe-timeout"
	FlagCreateTimeout = "create-timeout"
	FlagUploadTimeout = "upload-timeout"
	FlagProbeBackoff  = "probe-backoff"
)

// MergeFlags overrides config values with flags the user explicitly set.
// Flags left at their default never override the file.
func (c *Config) MergeFlags(flags *pflag.FlagSet) {
	if v, err := flags.GetString(FlagTarget); err == nil && flags.Changed(FlagTarget) && v != "" {
		c.Target = v
	}
	if v, err := flags.GetString(FlagGitHubOwner); err == nil && v != "" {
		c.GitHub.Owner = v
	}
	if v, err := flags.GetString(FlagGitHubRepo); err == nil && v != "" {
		c.GitHub.Repo = v
	}
	if v, err := flags.GetString(FlagGitHubToken); err == nil && v != "" {
		c.GitHub.Token = security.NewSecureToken(v)
	}
	if v, err := flags.GetString(FlagGitHubAPIURL); err == nil && v != "" {
		c.GitHub.APIURL = v
	}
	if v, err := flags.GetString(FlagGitHubUpload); err == nil && v != "" {
		c.GitHub.UploadURL = v
	}
	if v, err := flags.GetString(FlagGitLabProject); err == nil && v != "" {
		c.GitLab.Project = v
	}
	if v, err := flags.GetString(FlagGitLabToken); err == nil && v != "" {
		c.GitLab.Token = security.NewSecureToken(v)
	}
	if v, err := flags.GetString(FlagGitLabURL); err == nil && v != "" {
		c.GitLab.BaseURL = v
	}
	if v, err := flags.GetBool(FlagReuseExisting); err == nil && flags.Changed(FlagReuseExisting) {
		c.ReuseExisting = v
	}
	if v, err := flags.GetInt(FlagProbeRetries); err == nil && flags.Changed(FlagProbeRetries) {
		c.ProbeRetries = v
	}
	if v, err := flags.GetDuration(FlagProbeTimeout); err == nil && flags.Changed(FlagProbeTimeout) {
		c.Timeouts.Probe = v
	}
	if v, err := flags.GetDuration(FlagCreateTimeout); err == nil && flags.Changed(FlagCreateTimeout) {
		c.Timeouts.Create = v
	}
	if v, err := flags.GetDuration(FlagUploadTimeout); err == nil && flags.Changed(FlagUploadTimeout) {
		c.Timeouts.Upload = v
	}
	if v, err := flags.GetDuration(FlagProbeBackoff); err == nil && flags.Changed(FlagProbeBackoff) {
		c.Timeouts.ProbeBackoff = v
	}
}
