package platform

import (
	"context"
	"fmt"
	"time"
)

// Phase names a step of the publish state machine.
type Phase string

// Publish phases, in execution order.
const (
	PhaseTagProbe      Phase = "tag probe"
	PhaseTagCreate     Phase = "tag creation"
	PhaseReleaseCreate Phase = "release creation"
	PhaseReleaseLookup Phase = "release lookup"
	PhaseAssetUpload   Phase = "asset upload"
)

// ProbeState is the three-way answer of an existence probe.
type ProbeState int

// Probe states.
const (
	ProbeError ProbeState = iota
	ProbeFound
	ProbeNotFound
)

func (s ProbeState) String() string {
	switch s {
	case ProbeFound:
		return "found"
	case ProbeNotFound:
		return "not found"
	default:
		return "error"
	}
}

// ProbeResult is returned by existence probes. Cause is set only for ProbeError.
type ProbeResult struct {
	State ProbeState
	Cause error
}

// Found returns a ProbeResult for an existing resource.
func Found() ProbeResult { return ProbeResult{State: ProbeFound} }

// NotFound returns a ProbeResult for an absent resource.
func NotFound() ProbeResult { return ProbeResult{State: ProbeNotFound} }

// ProbeFailed returns a ProbeResult for an undetermined probe.
func ProbeFailed(cause error) ProbeResult { return ProbeResult{State: ProbeError, Cause: cause} }

// Resource describes a sub-resource reconciled with a probe-then-create sequence.
// Probe is nil for platforms without an existence check; the create is then issued directly.
type Resource struct {
	Name    string
	Probe   func(ctx context.Context) ProbeResult
	Create  func(ctx context.Context) error
	Retries int           // Extra probe attempts on ProbeError
	Backoff time.Duration // Retry n waits n*Backoff
}

// Reconcile makes sure the resource exists. It returns true if Create was called and succeeded.
//
// A probe error never falls through to Create: an undetermined probe could otherwise
// create a duplicate, so it is returned as ErrProbeFailed.
func Reconcile(ctx context.Context, r Resource) (bool, error) {
	if r.Probe == nil {
		if err := r.Create(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	result := r.Probe(ctx)
	for attempt := 1; result.State == ProbeError && attempt <= r.Retries; attempt++ {
		if err := sleep(ctx, time.Duration(attempt)*r.Backoff); err != nil {
			result = ProbeFailed(err)
			break
		}
		result = r.Probe(ctx)
	}

	switch result.State {
	case ProbeFound:
		return false, nil
	case ProbeNotFound:
		if err := r.Create(ctx); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s: %w", ErrProbeFailed, r.Name, result.Cause)
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
