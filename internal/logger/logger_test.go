package logger_test

import (
	"bytes"
	"testing"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestNoLogger(t *testing.T) {
	log := logger.NoLogger()
	assert.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Debug("debug")
		log.Info("info")
		log.Warn("warn")
		log.Error("error")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level bullets.Level
	}{
		{"debug", bullets.DebugLevel},
		{"info", bullets.InfoLevel},
		{"warn", bullets.WarnLevel},
		{"warning", bullets.WarnLevel},
		{"ERROR", bullets.ErrorLevel},
		{"", bullets.InfoLevel},
		{"verbose", bullets.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, logger.ParseLevel(tt.name))
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range logger.Levels {
		assert.NoError(t, logger.ValidLevel(l))
	}
	assert.Error(t, logger.ValidLevel("trace"))
}

func TestNew_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "info")

	log.Debug("hidden message")
	log.Info("visible message")

	assert.Contains(t, buf.String(), "visible message")
	assert.NotContains(t, buf.String(), "hidden message")
}
