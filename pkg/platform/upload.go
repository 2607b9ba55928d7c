package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/security"
	"github.com/sgaunet/release-sync/pkg/assets"
)

// AssetLoader returns the content of the asset at path.
type AssetLoader func(path string) (*assets.File, error)

// uploadFunc uploads one loaded asset to an already resolved release.
type uploadFunc func(ctx context.Context, file *assets.File) error

// uploader runs the sequential per-asset loop shared by all adapters.
type uploader struct {
	platform string
	load     AssetLoader
	timeout  time.Duration
	log      *bullets.Logger
}

// uploadAll processes every path in order. Read failures mark the asset skipped,
// upload failures mark it failed; neither stops the loop.
func (u *uploader) uploadAll(ctx context.Context, paths []string, upload uploadFunc) []AssetOutcome {
	outcomes := make([]AssetOutcome, 0, len(paths))

	for i, path := range paths {
		file, err := u.load(path)
		if err != nil {
			u.log.Warn(fmt.Sprintf("Skipping asset %s: %v", path, err))
			outcomes = append(outcomes, AssetOutcome{
				Name:   filepath.Base(path),
				Path:   path,
				Status: AssetSkipped,
				Reason: err.Error(),
			})
			continue
		}

		u.log.Info(fmt.Sprintf("Uploading %s to %s (%d/%d, %d bytes)", file.Name, u.platform, i+1, len(paths), file.Size))
		outcome := AssetOutcome{Name: file.Name, Path: file.Path, Size: file.Size}

		if err := u.uploadOne(ctx, file, upload); err != nil {
			sanitized := security.SanitizeError(err)
			u.log.Warn(fmt.Sprintf("Failed to upload %s: %v", file.Name, sanitized))
			outcome.Status = AssetFailed
			outcome.Reason = sanitized.Error()
		} else {
			outcome.Status = AssetUploaded
		}
		outcomes = append(outcomes, outcome)
	}

	summary := Summarize(outcomes)
	u.log.Info(fmt.Sprintf("%s assets: %d uploaded, %d skipped, %d failed",
		u.platform, summary.Uploaded, summary.Skipped, summary.Failed))
	return outcomes
}

func (u *uploader) uploadOne(ctx context.Context, file *assets.File, upload uploadFunc) error {
	return withTimeout(ctx, u.timeout, func(ctx context.Context) error {
		return upload(ctx, file)
	})
}
