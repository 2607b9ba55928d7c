package platform

import (
	"context"
	"time"

	"github.com/sgaunet/release-sync/pkg/assets"
	"github.com/sgaunet/release-sync/pkg/config"
)

// Publisher defines the unified publish operation implemented by every platform adapter.
type Publisher interface {
	// Publish creates the release described by req and uploads its assets.
	// A non-nil error is fatal; the returned Outcome is still populated
	// with what was done before the failure.
	Publish(ctx context.Context, req Request) (*Outcome, error)

	// PlatformName returns "GitHub" or "GitLab".
	PlatformName() string
}

// Settings holds the engine options shared by all adapters.
type Settings struct {
	Target        string // Default tag anchor when the request carries none
	ReuseExisting bool
	ProbeRetries  int
	ProbeBackoff  time.Duration // Linear step between probe retries; zero retries immediately
	ProbeTimeout  time.Duration
	CreateTimeout time.Duration
	UploadTimeout time.Duration
	Load          AssetLoader
}

// SettingsFromConfig extracts adapter settings from the configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Target:        cfg.Target,
		ReuseExisting: cfg.ReuseExisting,
		ProbeRetries:  cfg.ProbeRetries,
		ProbeBackoff:  cfg.Timeouts.ProbeBackoff,
		ProbeTimeout:  cfg.Timeouts.Probe,
		CreateTimeout: cfg.Timeouts.Create,
		UploadTimeout: cfg.Timeouts.Upload,
		Load:          assets.Load,
	}
}

func (s Settings) withDefaults() Settings {
	if s.Target == "" {
		s.Target = config.DefaultTarget
	}
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = config.DefaultProbeTimeout
	}
	if s.CreateTimeout <= 0 {
		s.CreateTimeout = config.DefaultCreateTimeout
	}
	if s.UploadTimeout <= 0 {
		s.UploadTimeout = config.DefaultUploadTimeout
	}
	if s.Load == nil {
		s.Load = assets.Load
	}
	return s
}

// withTimeout runs call under a deadline derived from ctx.
func withTimeout(ctx context.Context, d time.Duration, call func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return call(callCtx)
}
