package platform

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/timeutil"
	"github.com/sgaunet/release-sync/pkg/assets"
	ghclient "github.com/sgaunet/release-sync/pkg/github"
)

// GitHubAdapter publishes releases to GitHub.
// GitHub creates the release (and its tag) in one call and is the only
// authority on duplicates, so no existence probe is made. The request
// target is ignored: GitHub has no separate tag-creation step.
type GitHubAdapter struct {
	client   ghclient.APIClient
	settings Settings
	log      *bullets.Logger
}

// Ensure GitHubAdapter implements Publisher at compile time.
var _ Publisher = (*GitHubAdapter)(nil)

// NewGitHubAdapter creates a new GitHub adapter.
func NewGitHubAdapter(client ghclient.APIClient, settings Settings, log *bullets.Logger) *GitHubAdapter {
	return &GitHubAdapter{
		client:   client,
		settings: settings.withDefaults(),
		log:      log,
	}
}

// PlatformName returns "GitHub".
func (a *GitHubAdapter) PlatformName() string {
	return "GitHub"
}

// Publish creates the release, then uploads each asset in order.
func (a *GitHubAdapter) Publish(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	paths := slices.Clone(req.Assets)
	outcome := &Outcome{Platform: a.PlatformName()}

	a.log.Info(fmt.Sprintf("Creating release %s on GitHub", req.Tag))
	release, reused, err := a.createRelease(ctx, req)
	if err != nil {
		return a.fail(outcome, err, start)
	}
	if release == nil || release.ID == 0 {
		return a.fail(outcome, &PhaseError{Platform: a.PlatformName(), Phase: PhaseReleaseCreate, Err: ErrMissingReleaseID}, start)
	}

	outcome.ReleaseID = strconv.FormatInt(release.ID, 10)
	outcome.ReleaseURL = release.HTMLURL
	outcome.ReusedRelease = reused
	a.log.Debug(fmt.Sprintf("GitHub release ID: %s (reused: %t)", outcome.ReleaseID, reused))

	up := &uploader{platform: a.PlatformName(), load: a.settings.Load, timeout: a.settings.UploadTimeout, log: a.log}
	outcome.Assets = up.uploadAll(ctx, paths, func(ctx context.Context, file *assets.File) error {
		_, err := a.client.UploadAsset(ctx, release.ID, file.Name, file.Content)
		return err
	})

	outcome.Duration = time.Since(start)
	a.log.Debug(fmt.Sprintf("GitHub publish finished in %s", timeutil.FormatDuration(outcome.Duration)))
	return outcome, nil
}

// createRelease issues the single creation call. With ReuseExisting a
// duplicate is resolved by fetching the existing release.
func (a *GitHubAdapter) createRelease(ctx context.Context, req Request) (*ghclient.Release, bool, error) {
	var release *ghclient.Release
	err := withTimeout(ctx, a.settings.CreateTimeout, func(ctx context.Context) error {
		var err error
		release, err = a.client.CreateRelease(ctx, ghclient.NewRelease{
			TagName:    req.Tag,
			Name:       req.Name,
			Body:       req.Body,
			Draft:      req.Draft,
			Prerelease: req.Prerelease,
		})
		return err
	})
	if err == nil {
		return release, false, nil
	}

	if !errors.Is(err, ghclient.ErrReleaseExists) {
		return nil, false, a.phaseError(PhaseReleaseCreate, err)
	}
	if !a.settings.ReuseExisting {
		return nil, false, a.phaseError(PhaseReleaseCreate, fmt.Errorf("%w: %w", ErrAlreadyExists, err))
	}

	a.log.Warn(fmt.Sprintf("Release %s already exists on GitHub, reusing it", req.Tag))
	err = withTimeout(ctx, a.settings.ProbeTimeout, func(ctx context.Context) error {
		var err error
		release, err = a.client.GetReleaseByTag(ctx, req.Tag)
		return err
	})
	if err != nil {
		if errors.Is(err, ghclient.ErrReleaseNotFound) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, false, a.phaseError(PhaseReleaseLookup, err)
	}
	return release, true, nil
}

func (a *GitHubAdapter) phaseError(phase Phase, err error) error {
	return &PhaseError{Platform: a.PlatformName(), Phase: phase, Err: err}
}

func (a *GitHubAdapter) fail(outcome *Outcome, err error, start time.Time) (*Outcome, error) {
	outcome.Err = err
	outcome.Duration = time.Since(start)
	return outcome, err
}
