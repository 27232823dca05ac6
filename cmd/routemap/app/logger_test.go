package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		env      string
		expected string
		warns    bool
	}{
		{name: "default", config: &Config{}, expected: "info"},
		{name: "verbose", config: &Config{Verbose: true}, expected: "debug"},
		{name: "quiet", config: &Config{Quiet: true}, expected: "warn"},
		{name: "verbose and quiet", config: &Config{Verbose: true, Quiet: true}, expected: "warn", warns: true},
		{name: "explicit level beats verbose", config: &Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "invalid explicit level", config: &Config{LogLevel: "loud"}, expected: "info", warns: true},
		{name: "env used without flags", config: &Config{}, env: "trace", expected: "trace"},
		{name: "verbose beats env", config: &Config{Verbose: true}, env: "error", expected: "debug"},
		{name: "invalid env", config: &Config{}, env: "loud", expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			var warn bytes.Buffer

			assert.Equal(t, tt.expected, resolveLogLevel(tt.config, &warn))
			assert.Equal(t, tt.warns, warn.Len() > 0, warn.String())
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewLogger(&Config{Quiet: true, LogOutput: "discard", LogFormat: "json"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
