// Package security keeps platform tokens out of logs, errors and summaries.
package security

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// Tokens shorter than this are fully redacted.
	minTokenLengthForPartialMask = 8
	// Number of trailing characters shown for longer tokens.
	maskShowChars = 4
	maskEmpty     = "[empty]"
	maskRedacted  = "[redacted]"
)

// SecureToken wraps an API token so that every formatting path prints a masked value.
//
//	token := NewSecureToken("glpat-secret123456")
//	fmt.Printf("%v", token) // [token:****3456]
type SecureToken struct {
	value string
}

// NewSecureToken creates a SecureToken from a raw value.
func NewSecureToken(token string) SecureToken {
	return SecureToken{value: token}
}

// String implements fmt.Stringer with a masked representation.
func (t SecureToken) String() string {
	if t.value == "" {
		return maskEmpty
	}
	if len(t.value) < minTokenLengthForPartialMask {
		return maskRedacted
	}
	return fmt.Sprintf("[token:****%s]", t.value[len(t.value)-maskShowChars:])
}

// GoString implements fmt.GoStringer so %#v is masked too.
func (t SecureToken) GoString() string {
	return t.String()
}

// Value returns the raw token. Only pass it to an API client; never log it.
func (t SecureToken) Value() string {
	return t.value
}

// IsEmpty returns true if no token is set.
func (t SecureToken) IsEmpty() bool {
	return t.value == ""
}

// UnmarshalYAML reads a plain string token.
func (t *SecureToken) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode token: %w", err)
	}
	t.value = raw
	return nil
}

// MarshalYAML writes the masked value, so a dumped configuration never contains the secret.
func (t SecureToken) MarshalYAML() (any, error) {
	return t.String(), nil
}
