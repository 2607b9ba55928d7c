package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
)

// Resolver expands user supplied path patterns into existing files.
type Resolver struct {
	log *bullets.Logger
}

// NewResolver creates a resolver that reports dropped patterns on log.
func NewResolver(log *bullets.Logger) *Resolver {
	if log == nil {
		log = logger.NoLogger()
	}
	return &Resolver{log: log}
}

// SplitPatterns splits a whitespace or newline delimited pattern list.
func SplitPatterns(patterns string) []string {
	return strings.Fields(patterns)
}

// Resolve returns the absolute paths matched by patterns, in pattern order,
// without duplicates. Patterns matching nothing and paths that are not
// existing regular files are dropped with a warning; Resolve never fails.
func (r *Resolver) Resolve(patterns string) []string {
	seen := make(map[string]struct{})
	resolved := make([]string, 0)

	for _, pattern := range SplitPatterns(patterns) {
		matches, err := r.expand(pattern)
		if err != nil {
			r.log.Warn(fmt.Sprintf("Ignoring invalid asset pattern %q: %v", pattern, err))
			continue
		}
		if len(matches) == 0 {
			r.log.Warn(fmt.Sprintf("No file matches asset pattern %q", pattern))
			continue
		}

		for _, match := range matches {
			path, ok := r.check(match)
			if !ok {
				continue
			}
			if _, dup := seen[path]; dup {
				r.log.Debug("Skipping duplicate asset: " + path)
				continue
			}
			seen[path] = struct{}{}
			resolved = append(resolved, path)
		}
	}

	r.log.Debug(fmt.Sprintf("Resolved %d asset(s)", len(resolved)))
	return resolved
}

// expand returns the sorted glob matches of pattern. A pattern without glob
// meta characters is returned as is so that a missing literal path gets a
// precise warning from check.
func (r *Resolver) expand(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern: %w", err)
	}
	return matches, nil
}

// check converts path to an absolute, cleaned path and verifies it is an existing regular file.
func (r *Resolver) check(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		r.log.Warn(fmt.Sprintf("Ignoring asset %q: %v", path, err))
		return "", false
	}

	info, err := os.Stat(abs)
	if err != nil {
		r.log.Warn("Asset does not exist, ignoring: " + abs)
		return "", false
	}
	if !info.Mode().IsRegular() {
		r.log.Warn("Asset is not a regular file, ignoring: " + abs)
		return "", false
	}
	return abs, true
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
