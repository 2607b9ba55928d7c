// Package ui holds the interactive confirmation prompt and the run summary tables.
package ui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sgaunet/release-sync/pkg/platform"
)

// Prompter asks the user for confirmation on the terminal.
type Prompter struct{}

// NewPrompter creates a new prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// ConfirmPublish shows what is about to be published and asks for confirmation.
// The default answer is no.
func (p *Prompter) ConfirmPublish(req platform.Request, platforms []platform.Platform) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Publish %s to %s?", req.Tag, joinPlatforms(platforms)),
		Help:    DescribeRequest(req),
		Default: false,
	}

	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return confirmed, nil
}

// DescribeRequest renders req as a short multi-line description.
func DescribeRequest(req platform.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tag: %s\nname: %s\ntarget: %s\n", req.Tag, req.Name, req.Target)
	if req.Draft {
		b.WriteString("draft: yes\n")
	}
	if req.Prerelease {
		b.WriteString("prerelease: yes\n")
	}
	fmt.Fprintf(&b, "assets: %d", len(req.Assets))
	for _, a := range req.Assets {
		fmt.Fprintf(&b, "\n  %s", a)
	}
	return b.String()
}

func joinPlatforms(platforms []platform.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
