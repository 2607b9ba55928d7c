package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var errSanitized = errors.New("sanitized error")

// redaction replaces every match of pattern with replacement.
type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

// Applied in order; the generic pattern comes last so that platform tokens
// keep their specific marker.
var redactions = []redaction{
	{regexp.MustCompile(`glpat-[a-zA-Z0-9_-]{6,}`), "[gitlab-token-redacted]"},
	{regexp.MustCompile(`gh[opsu]_[a-zA-Z0-9]{20,}`), "[github-token-redacted]"},
	{regexp.MustCompile(`github_pat_[a-zA-Z0-9_]{20,}`), "[github-token-redacted]"},
	{regexp.MustCompile(`(?i)authorization:\s*(?:bearer|basic|token)\s+[a-zA-Z0-9+/=_-]{10,}`), "Authorization: [redacted]"},
	{regexp.MustCompile(`(?i)(private[-_]token[=:]\s*)[a-zA-Z0-9_-]{10,}`), "${1}[redacted]"},
	{regexp.MustCompile(`\b[A-Za-z0-9+/=]{40,200}\b`), "[token-redacted]"},
}

// Keys whose values [SanitizeMap] always redacts.
var sensitiveKeys = []string{
	"token", "password", "secret", "api_key", "apikey",
	"auth", "credential", "authorization",
}

// SanitizeString removes GitHub and GitLab tokens, authorization headers and
// long bearer-like strings from s.
func SanitizeString(s string) string {
	for _, r := range redactions {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// SanitizeError returns an error whose message has been passed through [SanitizeString].
// The original chain is not preserved. Returns nil for nil.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", errSanitized, SanitizeString(err.Error()))
}

// SanitizeMap redacts values of sensitive keys and sanitizes remaining string values.
func SanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	result := make(map[string]any, len(m))
	for k, v := range m {
		if isSensitiveKey(k) {
			result[k] = maskRedacted
			continue
		}
		if str, ok := v.(string); ok {
			result[k] = SanitizeString(str)
		} else {
			result[k] = v
		}
	}
	return result
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
