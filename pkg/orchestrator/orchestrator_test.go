package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/internal/security"
	"github.com/sgaunet/release-sync/pkg/config"
	"github.com/sgaunet/release-sync/pkg/orchestrator"
	"github.com/sgaunet/release-sync/pkg/platform"
	"github.com/sgaunet/release-sync/testing/fixtures"
	"github.com/sgaunet/release-sync/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness wires mock publishers into an orchestrator and counts factory calls.
type harness struct {
	github    *mocks.Publisher
	gitlab    *mocks.Publisher
	built     []platform.Platform
	factories map[platform.Platform]platform.Factory
}

func newHarness() *harness {
	h := &harness{
		github: mocks.NewPublisher("GitHub"),
		gitlab: mocks.NewPublisher("GitLab"),
	}
	h.factories = map[platform.Platform]platform.Factory{
		platform.GitHub: h.factory(platform.GitHub, h.github),
		platform.GitLab: h.factory(platform.GitLab, h.gitlab),
	}
	return h
}

func (h *harness) factory(p platform.Platform, pub *mocks.Publisher) platform.Factory {
	//nolint:ireturn // Matches the Factory signature.
	return func(*config.Config, *bullets.Logger) (platform.Publisher, error) {
		h.built = append(h.built, p)
		return pub, nil
	}
}

func (h *harness) orchestrator(cfg *config.Config) *orchestrator.Orchestrator {
	return orchestrator.New(cfg, h.factories, logger.NoLogger())
}

func TestParsePlatforms(t *testing.T) {
	assert.Equal(t,
		[]platform.Platform{platform.GitHub, platform.GitLab},
		orchestrator.ParsePlatforms(" GitHub, gitlab ,"))
	assert.Empty(t, orchestrator.ParsePlatforms(""))
	assert.Empty(t, orchestrator.ParsePlatforms(" , "))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		platforms []platform.Platform
		mutate    func(*config.Config)
		wantErr   error
		wantField string
	}{
		{
			name:      "valid",
			platforms: []platform.Platform{platform.GitHub, platform.GitLab},
		},
		{
			name:    "empty list",
			wantErr: platform.ErrNoPlatforms,
		},
		{
			name:      "unknown platform",
			platforms: []platform.Platform{platform.GitHub, "bitbucket"},
			wantErr:   platform.ErrUnsupportedPlatform,
		},
		{
			name:      "duplicate platform",
			platforms: []platform.Platform{platform.GitLab, platform.GitLab},
			wantErr:   platform.ErrDuplicatePlatform,
		},
		{
			name:      "missing github token",
			platforms: []platform.Platform{platform.GitHub},
			mutate:    func(c *config.Config) { c.GitHub.Token = security.NewSecureToken("") },
			wantErr:   platform.ErrMissingConfig,
			wantField: "github.token",
		},
		{
			name:      "missing gitlab project",
			platforms: []platform.Platform{platform.GitHub, platform.GitLab},
			mutate:    func(c *config.Config) { c.GitLab.Project = "" },
			wantErr:   platform.ErrMissingConfig,
			wantField: "gitlab.project",
		},
		{
			name:      "unselected platform may be unconfigured",
			platforms: []platform.Platform{platform.GitHub},
			mutate:    func(c *config.Config) { c.GitLab = config.GitLabConfig{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixtures.ValidConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			h := newHarness()

			err := h.orchestrator(cfg).Validate(tt.platforms)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var cfgErr *platform.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Empty(t, h.built, "no publisher may be built during validation")
		})
	}
}

func TestRun_ConfigErrorMakesNoCalls(t *testing.T) {
	cfg := fixtures.ValidConfig()
	cfg.GitLab.Token = security.NewSecureToken("")
	h := newHarness()

	outcomes, err := h.orchestrator(cfg).Run(context.Background(),
		[]platform.Platform{platform.GitHub, platform.GitLab}, fixtures.ValidRequest())

	require.ErrorIs(t, err, platform.ErrMissingConfig)
	assert.True(t, platform.IsFatal(err))
	assert.Empty(t, outcomes)
	assert.Empty(t, h.built)
	assert.Equal(t, 0, h.github.GetCallCount("Publish"))
	assert.Equal(t, 0, h.gitlab.GetCallCount("Publish"))
}

func TestRun_RequestedOrder(t *testing.T) {
	h := newHarness()

	outcomes, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitLab, platform.GitHub}, fixtures.ValidRequest())

	require.NoError(t, err)
	assert.Equal(t, []platform.Platform{platform.GitLab, platform.GitHub}, h.built)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "GitLab", outcomes[0].Platform)
	assert.Equal(t, "GitHub", outcomes[1].Platform)
	assert.Equal(t, 1, h.github.GetCallCount("Publish"))
	assert.Equal(t, 1, h.gitlab.GetCallCount("Publish"))
}

func TestRun_StopsAtFirstFatalError(t *testing.T) {
	h := newHarness()
	fatal := &platform.PhaseError{Platform: "GitHub", Phase: platform.PhaseReleaseCreate, Err: errors.New("401")}
	h.github.PublishError = fatal

	outcomes, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitHub, platform.GitLab}, fixtures.ValidRequest())

	require.ErrorIs(t, err, fatal)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Succeeded())
	assert.Equal(t, 0, h.gitlab.GetCallCount("Publish"), "gitlab must never be invoked")
	assert.Equal(t, []platform.Platform{platform.GitHub, platform.GitLab}, h.built)
}

func TestRun_EarlierPlatformsAreKept(t *testing.T) {
	h := newHarness()
	h.gitlab.PublishError = &platform.PhaseError{Platform: "GitLab", Phase: platform.PhaseTagProbe, Err: platform.ErrProbeFailed}

	outcomes, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitHub, platform.GitLab}, fixtures.ValidRequest())

	require.ErrorIs(t, err, platform.ErrProbeFailed)
	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Succeeded())
	assert.False(t, outcomes[1].Succeeded())
}

func TestRun_FactoryFailure(t *testing.T) {
	h := newHarness()
	h.factories[platform.GitLab] = func(*config.Config, *bullets.Logger) (platform.Publisher, error) {
		return nil, errors.New("bad base url")
	}

	outcomes, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitHub, platform.GitLab}, fixtures.ValidRequest())

	var cfgErr *platform.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "gitlab", cfgErr.Platform)
	assert.Empty(t, outcomes)
	assert.Equal(t, 0, h.github.GetCallCount("Publish"), "no platform may publish before every client is built")
}

func TestRun_InvalidClientURLFailsBeforePublishing(t *testing.T) {
	h := newHarness()
	h.factories[platform.GitLab] = platform.DefaultFactories()[platform.GitLab]
	cfg := fixtures.ValidConfig()
	cfg.GitLab.BaseURL = "https://gitlab example.com"

	orch := h.orchestrator(cfg)
	platforms := []platform.Platform{platform.GitHub, platform.GitLab}
	require.NoError(t, orch.Validate(platforms))

	outcomes, err := orch.Run(context.Background(), platforms, fixtures.ValidRequest())

	var cfgErr *platform.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "gitlab", cfgErr.Platform)
	assert.Equal(t, 1, strings.Count(err.Error(), "failed to create GitLab client"))
	assert.Empty(t, outcomes)
	assert.Equal(t, 0, h.github.GetCallCount("Publish"))
}

func TestRun_SameRequestForEveryPlatform(t *testing.T) {
	h := newHarness()
	req := fixtures.ValidRequest()
	req.Assets = []string{"/tmp/a.zip", "/tmp/b.zip"}

	_, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitHub, platform.GitLab}, req)
	require.NoError(t, err)

	require.Len(t, h.github.Requests, 1)
	require.Len(t, h.gitlab.Requests, 1)
	assert.Equal(t, req, h.github.Requests[0])
	assert.Equal(t, req, h.gitlab.Requests[0])
}

func TestRun_BlankNameRejected(t *testing.T) {
	h := newHarness()
	req := fixtures.ValidRequest()
	req.Name = " "

	outcomes, err := h.orchestrator(fixtures.ValidConfig()).Run(context.Background(),
		[]platform.Platform{platform.GitHub}, req)

	var cfgErr *platform.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.ErrorIs(t, err, platform.ErrInvalidRequest)
	assert.Empty(t, outcomes)
	assert.Empty(t, h.built)
}
