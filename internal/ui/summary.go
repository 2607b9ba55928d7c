package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sgaunet/release-sync/internal/security"
	"github.com/sgaunet/release-sync/internal/timeutil"
	"github.com/sgaunet/release-sync/pkg/platform"
)

const (
	statusOK     = "ok"
	statusFailed = "failed"
	yes          = "yes"
	no           = "no"
)

// RenderSummary writes one row per platform, followed by a table of assets
// that were not uploaded, if any.
func RenderSummary(w io.Writer, outcomes []*platform.Outcome) {
	if len(outcomes) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Platform", "Status", "Release", "Tag created", "Uploaded", "Skipped", "Failed", "Duration"})
	for _, o := range outcomes {
		s := platform.Summarize(o.Assets)
		tw.AppendRow(table.Row{
			o.Platform,
			status(o),
			releaseRef(o),
			boolText(o.TagCreated),
			s.Uploaded,
			s.Skipped,
			s.Failed,
			timeutil.FormatDuration(o.Duration),
		})
	}
	tw.Render()

	problems := table.NewWriter()
	problems.SetOutputMirror(w)
	problems.SetStyle(table.StyleLight)
	problems.AppendHeader(table.Row{"Platform", "Asset", "Status", "Reason"})
	for _, o := range outcomes {
		for _, a := range o.Assets {
			if a.Status == platform.AssetUploaded {
				continue
			}
			problems.AppendRow(table.Row{o.Platform, a.Name, string(a.Status), security.SanitizeString(a.Reason)})
		}
	}
	if problems.Length() > 0 {
		problems.Render()
	}
}

func status(o *platform.Outcome) string {
	if o.Succeeded() {
		return statusOK
	}
	return statusFailed
}

func releaseRef(o *platform.Outcome) string {
	switch {
	case o.ReleaseURL != "":
		return o.ReleaseURL
	case o.ReleaseID != "":
		return o.ReleaseID
	default:
		return "-"
	}
}

func boolText(b bool) string {
	if b {
		return yes
	}
	return no
}

// PartialFailureMessage returns a warning line for outcomes with skipped or
// failed assets, or "" when every asset was uploaded.
func PartialFailureMessage(outcomes []*platform.Outcome) string {
	var skipped, failed int
	for _, o := range outcomes {
		s := platform.Summarize(o.Assets)
		skipped += s.Skipped
		failed += s.Failed
	}
	if skipped == 0 && failed == 0 {
		return ""
	}
	return fmt.Sprintf("Release published with incomplete assets: %d skipped, %d failed", skipped, failed)
}
