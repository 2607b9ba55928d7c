package security

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sgaunet/bullets"
)

// DebugAuth logs which credentials a platform client uses, with sensitive values redacted.
//
//	DebugAuth(log, "GitLab", map[string]string{"token": tok.Value(), "base_url": url})
//	// Using GitLab authentication: base_url=https://gitlab.example.com token=[redacted]
func DebugAuth(logger *bullets.Logger, platform string, details map[string]string) {
	if logger == nil {
		return
	}

	raw := make(map[string]any, len(details))
	for k, v := range details {
		raw[k] = v
	}
	sanitized := SanitizeMap(raw)

	keys := make([]string, 0, len(sanitized))
	for k := range sanitized {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, sanitized[k]))
	}
	logger.Debug(fmt.Sprintf("Using %s authentication: %s", platform, strings.Join(parts, " ")))
}
