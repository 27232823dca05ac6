// Package app wires configuration, logging and the cleaning pipeline
// together for the routemap CLI.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap"
	"github.com/agentstation/routemap/pkg/errors"
)

// App holds the CLI's configuration, logger and pipeline.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// pipeline is created on first use
	mu       sync.RWMutex
	pipeline routemap.Pipeline
}

// New creates an App with configuration loaded from files and the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string { return a.config.Format }

// Pipeline returns the pipeline built from the configuration. Without extra
// options the instance is shared; with options a new one is built each call
// with the options applied after the configured ones.
func (a *App) Pipeline(opts ...routemap.Option) (routemap.Pipeline, error) {
	if len(opts) > 0 {
		base, err := a.pipelineOptions()
		if err != nil {
			return nil, err
		}
		return routemap.New(append(base, opts...)...)
	}

	a.mu.RLock()
	if p := a.pipeline; p != nil {
		a.mu.RUnlock()
		return p, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pipeline != nil {
		return a.pipeline, nil
	}

	base, err := a.pipelineOptions()
	if err != nil {
		return nil, err
	}
	p, err := routemap.New(base...)
	if err != nil {
		return nil, errors.NewConfigError("pipeline", "creating pipeline", err)
	}
	a.pipeline = p
	return p, nil
}

// pipelineOptions translates the configuration into pipeline options.
func (a *App) pipelineOptions() ([]routemap.Option, error) {
	direction, err := routemap.ParseDirection(a.config.Direction)
	if err != nil {
		return nil, err
	}

	opts := []routemap.Option{
		routemap.WithThreshold(a.config.Threshold),
		routemap.WithDirection(direction),
		routemap.WithProvenance(a.config.Provenance),
		routemap.WithLogger(a.logger),
	}
	if a.config.SourceDir != "" {
		opts = append(opts, routemap.WithSourceDir(a.config.SourceDir))
	}
	if a.config.CleanDir != "" {
		opts = append(opts, routemap.WithCleanDir(a.config.CleanDir))
	}
	if a.config.MappingsDir != "" {
		opts = append(opts, routemap.WithMappingsDir(a.config.MappingsDir))
	}
	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPipeline sets the shared pipeline instance (useful for testing).
func WithPipeline(p routemap.Pipeline) Option {
	return func(a *App) error {
		a.pipeline = p
		return nil
	}
}
