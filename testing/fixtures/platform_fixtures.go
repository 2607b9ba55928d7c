package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sgaunet/release-sync/internal/security"
	"github.com/sgaunet/release-sync/pkg/config"
	"github.com/sgaunet/release-sync/pkg/platform"
)

// Test constants for platform fixtures.
const (
	DefaultTag    = "v1.0.0"
	DefaultName   = "Release 1.0.0"
	DefaultBody   = "First stable release"
	DefaultTarget = "main"
)

// ValidRequest returns a release request without assets.
func ValidRequest() platform.Request {
	return platform.Request{
		Tag:    DefaultTag,
		Name:   DefaultName,
		Body:   DefaultBody,
		Target: DefaultTarget,
	}
}

// ValidConfig returns a configuration with both platforms fully set.
func ValidConfig() *config.Config {
	cfg := config.Default()
	cfg.GitHub = config.GitHubConfig{
		Owner: "octo",
		Repo:  "widget",
		Token: security.NewSecureToken("ghp_fixture1234567890"),
	}
	cfg.GitLab = config.GitLabConfig{
		Project: "group/widget",
		Token:   security.NewSecureToken("glpat-fixture1234567890"),
	}
	return cfg
}

// WriteAssets creates one small file per name in dir and returns their paths.
func WriteAssets(t testing.TB, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content of "+name), 0o600); err != nil {
			t.Fatalf("failed to write asset %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}
