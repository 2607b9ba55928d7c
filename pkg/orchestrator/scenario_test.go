package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/pkg/assets"
	"github.com/sgaunet/release-sync/pkg/config"
	"github.com/sgaunet/release-sync/pkg/orchestrator"
	"github.com/sgaunet/release-sync/pkg/platform"
	"github.com/sgaunet/release-sync/testing/fixtures"
	"github.com/sgaunet/release-sync/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiHarness runs the real adapters against mocked platform APIs.
type apiHarness struct {
	github *mocks.GitHubAPIClient
	gitlab *mocks.GitLabAPIClient
}

func newAPIHarness() *apiHarness {
	h := &apiHarness{
		github: mocks.NewGitHubAPIClient(),
		gitlab: mocks.NewGitLabAPIClient(),
	}
	h.github.CreateReleaseResponse = fixtures.ValidGitHubRelease()
	h.gitlab.GetReleaseByTagResponse = fixtures.ValidGitLabRelease()
	return h
}

func (h *apiHarness) run(t *testing.T, req platform.Request, platforms ...platform.Platform) ([]*platform.Outcome, error) {
	t.Helper()
	factories := map[platform.Platform]platform.Factory{
		platform.GitHub: func(cfg *config.Config, log *bullets.Logger) (platform.Publisher, error) {
			return platform.NewGitHubAdapter(h.github, platform.SettingsFromConfig(cfg), log), nil
		},
		platform.GitLab: func(cfg *config.Config, log *bullets.Logger) (platform.Publisher, error) {
			return platform.NewGitLabAdapter(h.gitlab, platform.SettingsFromConfig(cfg), log), nil
		},
	}
	o := orchestrator.New(fixtures.ValidConfig(), factories, logger.NoLogger())
	return o.Run(context.Background(), platforms, req)
}

func TestScenario_GitHubFatalSkipsGitLab(t *testing.T) {
	h := newAPIHarness()
	h.github.CreateReleaseError = errors.New("500 internal error")

	outcomes, err := h.run(t, fixtures.ValidRequest(), platform.GitHub, platform.GitLab)
	require.Error(t, err)
	assert.True(t, platform.IsFatal(err))
	assert.Len(t, outcomes, 1)
	assert.Empty(t, h.gitlab.GetCalls())
}

func TestScenario_BothPlatformsWithAssets(t *testing.T) {
	h := newAPIHarness()
	h.github.UploadAssetErrors["b.zip"] = errors.New("timeout")

	req := fixtures.ValidRequest()
	req.Assets = fixtures.WriteAssets(t, t.TempDir(), "a.zip", "b.zip", "c.zip")

	outcomes, err := h.run(t, req, platform.GitHub, platform.GitLab)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	gh := platform.Summarize(outcomes[0].Assets)
	assert.Equal(t, platform.Summary{Total: 3, Uploaded: 2, Failed: 1}, gh)

	gl := platform.Summarize(outcomes[1].Assets)
	assert.Equal(t, platform.Summary{Total: 3, Uploaded: 3}, gl)
	assert.True(t, outcomes[1].TagCreated)
	assert.Equal(t, "main", h.gitlab.GetLastCall("CreateTag").Args["ref"])
}

func TestScenario_RepeatedRunOnGitLab(t *testing.T) {
	h := newAPIHarness()

	_, err := h.run(t, fixtures.ValidRequest(), platform.GitLab)
	require.NoError(t, err)

	h.gitlab.Reset()
	_, err = h.run(t, fixtures.ValidRequest(), platform.GitLab)
	require.NoError(t, err)
	assert.Equal(t, 0, h.gitlab.GetCallCount("CreateTag"))
	assert.Equal(t, 1, h.gitlab.GetCallCount("CreateRelease"))
}

func TestScenario_MissingAssetIsDroppedBeforeUpload(t *testing.T) {
	dir := t.TempDir()
	existing := fixtures.WriteAssets(t, dir, "a.txt")[0]
	patterns := existing + "\n" + filepath.Join(dir, "missing.txt")

	req := fixtures.ValidRequest()
	req.Assets = assets.NewResolver(logger.NoLogger()).Resolve(patterns)
	require.Equal(t, []string{existing}, req.Assets)

	h := newAPIHarness()
	outcomes, err := h.run(t, req, platform.GitHub, platform.GitLab)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, 1, h.github.GetCallCount("UploadAsset"))
	assert.Equal(t, 1, h.gitlab.GetCallCount("UploadAsset"))
	assert.Equal(t, "a.txt", h.github.GetLastCall("UploadAsset").Args["name"])
	for _, o := range outcomes {
		assert.Equal(t, platform.Summary{Total: 1, Uploaded: 1}, platform.Summarize(o.Assets))
	}
}
