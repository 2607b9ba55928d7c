// Package orchestrator validates the requested platforms and publishes a
// release to each of them in order, stopping at the first fatal error.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/pkg/config"
	"github.com/sgaunet/release-sync/pkg/platform"
)

// Orchestrator runs publishers sequentially.
type Orchestrator struct {
	cfg       *config.Config
	factories map[platform.Platform]platform.Factory
	log       *bullets.Logger
}

// New creates an Orchestrator. factories maps platform ids to publisher
// constructors, usually platform.DefaultFactories().
func New(cfg *config.Config, factories map[platform.Platform]platform.Factory, log *bullets.Logger) *Orchestrator {
	if log == nil {
		log = logger.NoLogger()
	}
	return &Orchestrator{cfg: cfg, factories: factories, log: log}
}

// ParsePlatforms splits a comma-separated platform list, trimming blanks
// and lower-casing ids.
func ParsePlatforms(list string) []platform.Platform {
	var platforms []platform.Platform
	for _, p := range strings.Split(list, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			platforms = append(platforms, platform.Platform(p))
		}
	}
	return platforms
}

// Validate checks every requested platform before anything runs: the id
// must be known, listed once, and fully configured.
// The first problem is returned as a *platform.ConfigError.
func (o *Orchestrator) Validate(platforms []platform.Platform) error {
	if len(platforms) == 0 {
		return &platform.ConfigError{Err: platform.ErrNoPlatforms}
	}

	seen := make(map[platform.Platform]bool, len(platforms))
	for _, p := range platforms {
		if _, ok := o.factories[p]; !ok {
			return &platform.ConfigError{Platform: string(p), Err: platform.ErrUnsupportedPlatform}
		}
		if seen[p] {
			return &platform.ConfigError{Platform: string(p), Err: platform.ErrDuplicatePlatform}
		}
		seen[p] = true

		missing, err := o.cfg.ValidatePlatform(string(p))
		if err != nil {
			if errors.Is(err, config.ErrUnknownPlatform) {
				err = platform.ErrUnsupportedPlatform
			}
			return &platform.ConfigError{Platform: string(p), Err: err}
		}
		if missing != "" {
			return &platform.ConfigError{Platform: string(p), Field: missing, Err: platform.ErrMissingConfig}
		}
	}
	return nil
}

// Run validates platforms and builds every publisher, then publishes req to
// each one in order. A publisher that cannot be built fails the run before
// any platform is contacted.
// It returns the outcomes produced so far, including the failed one, and
// the fatal error that stopped the run. Completed platforms are not rolled back.
func (o *Orchestrator) Run(ctx context.Context, platforms []platform.Platform, req platform.Request) ([]*platform.Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, &platform.ConfigError{Err: err}
	}
	publishers, err := o.build(platforms)
	if err != nil {
		return nil, err
	}

	outcomes := make([]*platform.Outcome, 0, len(platforms))
	for i, publisher := range publishers {
		o.log.Info(fmt.Sprintf("Publishing %s to %s (%d/%d)", req.Tag, platforms[i], i+1, len(platforms)))

		outcome, err := publisher.Publish(ctx, req)
		if outcome != nil {
			outcomes = append(outcomes, outcome)
		}
		if err != nil {
			if remaining := len(platforms) - i - 1; remaining > 0 {
				o.log.Warn(fmt.Sprintf("Stopping: %d remaining platform(s) not processed", remaining))
			}
			return outcomes, err
		}
	}

	return outcomes, nil
}

func (o *Orchestrator) build(platforms []platform.Platform) ([]platform.Publisher, error) {
	if err := o.Validate(platforms); err != nil {
		return nil, err
	}

	publishers := make([]platform.Publisher, 0, len(platforms))
	for _, p := range platforms {
		publisher, err := o.factories[p](o.cfg, o.log)
		if err != nil {
			return nil, &platform.ConfigError{Platform: string(p), Err: err}
		}
		publishers = append(publishers, publisher)
	}
	return publishers, nil
}
