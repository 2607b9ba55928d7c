// Package logger builds the bullets loggers used by release-sync.
//
// Usage:
//
//	log := logger.NewLogger("debug")
//	log.Info("Publishing v1.0.0")
//
//	silent := logger.NoLogger() // tests
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sgaunet/bullets"
)

// Levels accepted by [ParseLevel].
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel converts a level name to a bullets level. Unknown names fall back to info.
func ParseLevel(name string) bullets.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return bullets.DebugLevel
	case "warn", "warning":
		return bullets.WarnLevel
	case "error":
		return bullets.ErrorLevel
	default:
		return bullets.InfoLevel
	}
}

// ValidLevel returns an error if name is not one of [Levels].
func ValidLevel(name string) error {
	for _, l := range Levels {
		if strings.EqualFold(name, l) {
			return nil
		}
	}
	return fmt.Errorf("invalid log level %q (expected one of %s)", name, strings.Join(Levels, ", "))
}

// NewLogger creates a logger writing to stdout at the given level.
func NewLogger(level string) *bullets.Logger {
	return New(os.Stdout, level)
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) *bullets.Logger {
	l := bullets.New(w)
	l.SetLevel(ParseLevel(level))
	return l
}

// NoLogger creates a logger that discards everything below fatal.
func NoLogger() *bullets.Logger {
	l := bullets.New(io.Discard)
	l.SetLevel(bullets.FatalLevel)
	return l
}
