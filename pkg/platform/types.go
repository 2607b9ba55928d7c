// Package platform provides the publish contract shared by every hosting platform.
//
// The [Publisher] interface is the single operation each platform adapter implements:
// take a fully-resolved [Request] and produce an [Outcome], or fail with a fatal error.
// Adapters are built by the [Factory] values of [DefaultFactories] from explicit configuration:
//
//	pub, err := platform.DefaultFactories()[platform.GitHub](cfg, logger)
//	outcome, err := pub.Publish(ctx, platform.Request{Tag: "v1.0.0", Name: "v1.0.0"})
//	summary := platform.Summarize(outcome.Assets)
package platform

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies a supported hosting platform.
type Platform string

// Supported platforms.
const (
	GitHub Platform = "github"
	GitLab Platform = "gitlab"
)

// Request describes the release to publish. It is built once per invocation
// and must not be modified by adapters.
type Request struct {
	Tag        string
	Name       string
	Body       string
	Draft      bool     // GitHub only
	Prerelease bool     // GitHub only
	Target     string   // Branch or commit a new tag is anchored at
	Assets     []string // Absolute, existing, de-duplicated paths
}

// Validate rejects a request with a blank tag or name.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Tag) == "" {
		return fmt.Errorf("%w: tag is empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidRequest)
	}
	return nil
}

// AssetStatus is the result of publishing a single asset.
type AssetStatus string

// Asset statuses.
const (
	AssetUploaded AssetStatus = "uploaded"
	AssetSkipped  AssetStatus = "skipped"
	AssetFailed   AssetStatus = "failed"
)

// AssetOutcome records what happened to one asset during a publish.
type AssetOutcome struct {
	Name   string
	Path   string
	Size   int64
	Status AssetStatus
	Reason string // Empty when uploaded
}

// Outcome is the per-platform result of a publish.
// Err is nil on success; asset failures never set Err.
type Outcome struct {
	Platform      string
	ReleaseID     string
	ReleaseURL    string
	TagCreated    bool // GitLab: the tag did not exist and was created
	ReusedRelease bool // An existing release was reused instead of created
	Assets        []AssetOutcome
	Duration      time.Duration
	Err           error
}

// Succeeded returns true if the publish completed without a fatal error.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Err == nil
}

// Summary holds asset counters for one publish.
type Summary struct {
	Total    int
	Uploaded int
	Skipped  int
	Failed   int
}

// Summarize counts asset outcomes by status.
func Summarize(assets []AssetOutcome) Summary {
	s := Summary{Total: len(assets)}
	for _, a := range assets {
		switch a.Status {
		case AssetUploaded:
			s.Uploaded++
		case AssetSkipped:
			s.Skipped++
		case AssetFailed:
			s.Failed++
		}
	}
	return s
}

// Partial returns true if at least one asset was not uploaded.
func (s Summary) Partial() bool {
	return s.Skipped > 0 || s.Failed > 0
}
