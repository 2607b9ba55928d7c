package platform

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/timeutil"
	"github.com/sgaunet/release-sync/pkg/assets"
	"github.com/sgaunet/release-sync/pkg/gitlab"
)

// GitLabAdapter publishes releases to GitLab in four phases:
// tag reconciliation, release creation, release lookup and asset upload.
// Only the tag has an existence probe.
type GitLabAdapter struct {
	client   gitlab.APIClient
	settings Settings
	log      *bullets.Logger
}

// Ensure GitLabAdapter implements Publisher at compile time.
var _ Publisher = (*GitLabAdapter)(nil)

// NewGitLabAdapter creates a new GitLab adapter.
func NewGitLabAdapter(client gitlab.APIClient, settings Settings, log *bullets.Logger) *GitLabAdapter {
	return &GitLabAdapter{
		client:   client,
		settings: settings.withDefaults(),
		log:      log,
	}
}

// PlatformName returns "GitLab".
func (a *GitLabAdapter) PlatformName() string {
	return "GitLab"
}

// Publish runs the four phases. Phases A to C are fatal on failure,
// asset failures in phase D are only recorded.
func (a *GitLabAdapter) Publish(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	paths := slices.Clone(req.Assets)
	outcome := &Outcome{Platform: a.PlatformName()}

	target := req.Target
	if target == "" {
		target = a.settings.Target
	}
	if req.Draft || req.Prerelease {
		a.log.Debug(fmt.Sprintf("GitLab has no draft/prerelease releases, ignoring (draft=%t, prerelease=%t)",
			req.Draft, req.Prerelease))
	}

	// Phase A
	created, err := a.reconcileTag(ctx, req.Tag, target)
	if err != nil {
		return a.fail(outcome, err, start)
	}
	outcome.TagCreated = created

	// Phase B
	a.log.Info(fmt.Sprintf("Creating release %s on GitLab", req.Tag))
	reused, err := a.createRelease(ctx, req, target)
	if err != nil {
		return a.fail(outcome, err, start)
	}
	outcome.ReusedRelease = reused

	// Phase C
	release, err := a.lookupRelease(ctx, req.Tag)
	if err != nil {
		return a.fail(outcome, err, start)
	}
	outcome.ReleaseID = release.TagName
	outcome.ReleaseURL = release.URL
	a.log.Debug(fmt.Sprintf("GitLab release resolved: %s", release.TagName))

	// Phase D
	up := &uploader{platform: a.PlatformName(), load: a.settings.Load, timeout: a.settings.UploadTimeout, log: a.log}
	outcome.Assets = up.uploadAll(ctx, paths, func(ctx context.Context, file *assets.File) error {
		_, err := a.client.UploadAsset(ctx, release.TagName, file.Name, file.Content)
		return err
	})

	outcome.Duration = time.Since(start)
	a.log.Debug(fmt.Sprintf("GitLab publish finished in %s", timeutil.FormatDuration(outcome.Duration)))
	return outcome, nil
}

// reconcileTag probes the tag and creates it at target only on an explicit not-found.
// A tag created by someone else between the probe and the create counts as found.
func (a *GitLabAdapter) reconcileTag(ctx context.Context, tag, target string) (bool, error) {
	raced := false
	created, err := Reconcile(ctx, Resource{
		Name:    "tag " + tag,
		Retries: a.settings.ProbeRetries,
		Backoff: a.settings.ProbeBackoff,
		Probe: func(ctx context.Context) ProbeResult {
			return a.probeTag(ctx, tag)
		},
		Create: func(ctx context.Context) error {
			a.log.Info(fmt.Sprintf("Creating tag %s at %s", tag, target))
			err := withTimeout(ctx, a.settings.CreateTimeout, func(ctx context.Context) error {
				_, err := a.client.CreateTag(ctx, tag, target)
				return err
			})
			if errors.Is(err, gitlab.ErrTagExists) {
				raced = true
				return nil
			}
			return err
		},
	})
	if err != nil {
		phase := PhaseTagCreate
		if errors.Is(err, ErrProbeFailed) {
			phase = PhaseTagProbe
		}
		return false, a.phaseError(phase, err)
	}

	if raced {
		created = false
	}
	if !created {
		a.log.Debug(fmt.Sprintf("Tag %s already exists on GitLab", tag))
	}
	return created, nil
}

func (a *GitLabAdapter) probeTag(ctx context.Context, tag string) ProbeResult {
	var result ProbeResult
	_ = withTimeout(ctx, a.settings.ProbeTimeout, func(ctx context.Context) error {
		_, err := a.client.ProbeTag(ctx, tag)
		switch {
		case err == nil:
			result = Found()
		case errors.Is(err, gitlab.ErrTagNotFound):
			result = NotFound()
		default:
			a.log.Debug(fmt.Sprintf("Tag probe for %s failed: %v", tag, err))
			result = ProbeFailed(err)
		}
		return err
	})
	return result
}

// createRelease issues the release creation call without a probe. With
// ReuseExisting a duplicate is accepted and the existing release is used.
func (a *GitLabAdapter) createRelease(ctx context.Context, req Request, target string) (bool, error) {
	err := withTimeout(ctx, a.settings.CreateTimeout, func(ctx context.Context) error {
		return a.client.CreateRelease(ctx, gitlab.NewRelease{
			TagName:     req.Tag,
			Name:        req.Name,
			Description: req.Body,
			Ref:         target,
		})
	})
	if err == nil {
		return false, nil
	}

	if errors.Is(err, gitlab.ErrReleaseExists) {
		if a.settings.ReuseExisting {
			a.log.Warn(fmt.Sprintf("Release %s already exists on GitLab, reusing it", req.Tag))
			return true, nil
		}
		err = fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	return false, a.phaseError(PhaseReleaseCreate, err)
}

func (a *GitLabAdapter) lookupRelease(ctx context.Context, tag string) (*gitlab.Release, error) {
	var release *gitlab.Release
	err := withTimeout(ctx, a.settings.ProbeTimeout, func(ctx context.Context) error {
		var err error
		release, err = a.client.GetReleaseByTag(ctx, tag)
		return err
	})
	if err != nil {
		if errors.Is(err, gitlab.ErrReleaseNotFound) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, a.phaseError(PhaseReleaseLookup, err)
	}
	if release == nil || release.TagName == "" {
		return nil, a.phaseError(PhaseReleaseLookup, ErrMissingReleaseID)
	}
	return release, nil
}

func (a *GitLabAdapter) phaseError(phase Phase, err error) error {
	return &PhaseError{Platform: a.PlatformName(), Phase: phase, Err: err}
}

func (a *GitLabAdapter) fail(outcome *Outcome, err error, start time.Time) (*Outcome, error) {
	outcome.Err = err
	outcome.Duration = time.Since(start)
	return outcome, err
}
