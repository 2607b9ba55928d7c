// Package tagutil interprets release tags as semantic versions.
package tagutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var errEmptyTag = errors.New("tag is empty")

// ErrEmptyTag is returned by Validate for an empty or blank tag.
var ErrEmptyTag = errEmptyTag

// Parse parses tag as a semantic version. A leading "v" is accepted.
func Parse(tag string) (*semver.Version, error) {
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, fmt.Errorf("tag %q is not a semantic version: %w", tag, err)
	}
	return v, nil
}

// IsPrerelease reports whether tag is a semantic version with a prerelease
// component, such as v1.2.0-rc.1. Non-semver tags are never prereleases.
func IsPrerelease(tag string) bool {
	v, err := Parse(tag)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// Validate rejects empty tags and tags containing whitespace.
// It returns a non-nil warning when the tag is not a semantic version;
// such tags are still usable.
func Validate(tag string) (warning error, err error) {
	if strings.TrimSpace(tag) == "" {
		return nil, errEmptyTag
	}
	if strings.ContainsAny(tag, " \t\n") {
		return nil, fmt.Errorf("tag %q must not contain whitespace", tag)
	}
	if _, perr := Parse(tag); perr != nil {
		return perr, nil
	}
	return nil, nil
}
