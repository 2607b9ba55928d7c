package platform

import (
	"errors"
	"fmt"
)

// Sentinel errors for platform operations.
var (
	// ErrUnsupportedPlatform is returned for an unknown platform identifier.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrMissingConfig is returned when a required configuration field is empty.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrDuplicatePlatform is returned when a platform is requested more than once.
	ErrDuplicatePlatform = errors.New("platform requested more than once")

	// ErrNoPlatforms is returned when the platform list is empty.
	ErrNoPlatforms = errors.New("no platform requested")

	// ErrAlreadyExists is returned when the platform reports a duplicate release.
	ErrAlreadyExists = errors.New("release already exists for this tag")

	// ErrNotFound is returned when a looked-up release does not exist.
	ErrNotFound = errors.New("release not found for tag")

	// ErrMissingReleaseID is returned when the platform response carries no release identifier.
	ErrMissingReleaseID = errors.New("release identifier missing from response")

	// ErrProbeFailed is returned when an existence probe cannot determine whether a resource exists.
	ErrProbeFailed = errors.New("existence probe failed")

	// ErrInvalidRequest is returned by Request.Validate.
	ErrInvalidRequest = errors.New("invalid release request")
)

// ConfigError reports a configuration problem detected before any network call.
type ConfigError struct {
	Platform string
	Field    string
	Err      error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Platform == "":
		return fmt.Sprintf("configuration error: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("configuration error for %s: %v", e.Platform, e.Err)
	default:
		return fmt.Sprintf("configuration error for %s: %v: %s", e.Platform, e.Err, e.Field)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PhaseError reports a fatal failure of one step of a platform publish.
type PhaseError struct {
	Platform string
	Phase    Phase
	Err      error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Platform, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if err should stop the whole run.
func IsFatal(err error) bool {
	var cfgErr *ConfigError
	var phaseErr *PhaseError
	return errors.As(err, &cfgErr) || errors.As(err, &phaseErr)
}
