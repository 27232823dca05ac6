package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/logging"
)

// NewLogger builds the CLI logger from the configuration.
// The level is chosen in this order:
//  1. --log-level
//  2. -v/--verbose (debug)
//  3. -q/--quiet (warn)
//  4. LOG_LEVEL
//  5. info
//
// A log_level set in the config file (or ROUTEMAP_LOG_LEVEL) counts as --log-level.
func NewLogger(config *Config) zerolog.Logger {
	level := resolveLogLevel(config, os.Stderr)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		AddCaller: level == "debug" || level == "trace",
		NoColor:   config.NoColor,
	})
}

// resolveLogLevel picks the effective level and writes warnings for
// unusable input to warn.
func resolveLogLevel(config *Config, warn io.Writer) string {
	if config.LogLevel != "" {
		level, ok := knownLevel(config.LogLevel)
		if !ok {
			fmt.Fprintf(warn, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	}

	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintln(warn, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	case config.Verbose:
		return "debug"
	case config.Quiet:
		return "warn"
	}

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level, _ := knownLevel(env)
		return level
	}
	return "info"
}

// knownLevel reports whether level is one the CLI accepts, falling back to info.
func knownLevel(level string) (string, bool) {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level, true
	}
	return "info", false
}
