// Package config handles loading, merging and validation of release-sync configuration.
//
// Values are layered: built-in defaults, then the YAML file, then environment
// variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sgaunet/release-sync/internal/security"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultTarget        = "main"
	DefaultProbeTimeout  = 30 * time.Second
	DefaultCreateTimeout = 60 * time.Second
	DefaultUploadTimeout = 5 * time.Minute
	DefaultProbeBackoff  = time.Second

	ownerRepoParts = 2
)

// Environment variables read by ApplyEnv.
const (
	EnvGitHubToken      = "GITHUB_TOKEN"
	EnvGitLabToken      = "GITLAB_TOKEN"
	EnvGitHubRepository = "GITHUB_REPOSITORY"
)

var (
	errConfigNotFound     = errors.New("config file not found")
	errInvalidRepository  = errors.New("repository must be in owner/repo form")
	errNegativeRetries    = errors.New("probe_retries must not be negative")
	errNonPositiveTimeout = errors.New("timeouts must be positive")
	errNegativeBackoff    = errors.New("timeouts.probe_backoff must not be negative")

	// ErrConfigNotFound is returned by Load when the file does not exist.
	ErrConfigNotFound = errConfigNotFound
	// ErrInvalidRepository is returned for a malformed owner/repo value.
	ErrInvalidRepository = errInvalidRepository
)

// Config represents the complete configuration for release-sync.
type Config struct {
	GitHub        GitHubConfig `yaml:"github"`
	GitLab        GitLabConfig `yaml:"gitlab"`
	Target        string       `yaml:"target"`
	ReuseExisting bool         `yaml:"reuse_existing"`
	ProbeRetries  int          `yaml:"probe_retries"`
	Timeouts      Timeouts     `yaml:"timeouts"`
}

// GitHubConfig contains GitHub-specific configuration.
type GitHubConfig struct {
	Owner     string               `yaml:"owner"`
	Repo      string               `yaml:"repo"`
	Token     security.SecureToken `yaml:"token,omitempty"`
	APIURL    string               `yaml:"api_url"`
	UploadURL string               `yaml:"upload_url"`
}

// GitLabConfig contains GitLab-specific configuration.
type GitLabConfig struct {
	Project string               `yaml:"project"`
	Token   security.SecureToken `yaml:"token,omitempty"`
	BaseURL string               `yaml:"base_url"`
}

// Timeouts bounds each outbound call by kind.
// ProbeBackoff is the linear delay step between probe retries.
type Timeouts struct {
	Probe        time.Duration `yaml:"probe"`
	Create       time.Duration `yaml:"create"`
	Upload       time.Duration `yaml:"upload"`
	ProbeBackoff time.Duration `yaml:"probe_backoff"`
}

// Default returns a configuration holding only built-in defaults.
func Default() *Config {
	return &Config{
		Target: DefaultTarget,
		Timeouts: Timeouts{
			Probe:        DefaultProbeTimeout,
			Create:       DefaultCreateTimeout,
			Upload:       DefaultUploadTimeout,
			ProbeBackoff: DefaultProbeBackoff,
		},
	}
}

// DefaultPath returns ~/.config/release-sync/config.yml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "release-sync", "config.yml"), nil
}

// Load reads the YAML file at path on top of the defaults.
// Keys absent from the file keep their default value.
func Load(path string) (*Config, error) {
	// #nosec G304 - config path comes from the user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads the file at DefaultPath. A missing file is not an error.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if errors.Is(err, errConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv fills tokens and the GitHub repository from the environment.
// getenv is usually os.Getenv. Values already set are kept.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if c.GitHub.Token.IsEmpty() {
		if v := getenv(EnvGitHubToken); v != "" {
			c.GitHub.Token = security.NewSecureToken(v)
		}
	}
	if c.GitLab.Token.IsEmpty() {
		if v := getenv(EnvGitLabToken); v != "" {
			c.GitLab.Token = security.NewSecureToken(v)
		}
	}

	if c.GitHub.Owner == "" && c.GitHub.Repo == "" {
		if v := getenv(EnvGitHubRepository); v != "" {
			owner, repo, err := SplitRepository(v)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvGitHubRepository, err)
			}
			c.GitHub.Owner, c.GitHub.Repo = owner, repo
		}
	}

	return nil
}

// Validate checks value ranges. Platform fields are checked by ValidatePlatform.
func (c *Config) Validate() error {
	if c.ProbeRetries < 0 {
		return errNegativeRetries
	}
	if c.Timeouts.Probe <= 0 || c.Timeouts.Create <= 0 || c.Timeouts.Upload <= 0 {
		return errNonPositiveTimeout
	}
	if c.Timeouts.ProbeBackoff < 0 {
		return errNegativeBackoff
	}
	return nil
}

// SplitRepository splits "owner/repo".
func SplitRepository(s string) (string, string, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) != ownerRepoParts || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", errInvalidRepository, s)
	}
	return parts[0], parts[1], nil
}
