// Package routemap cleans and aligns the airline, airport, route, airplane and
// country GDP datasets so they can be joined on a common country key and on
// resolvable foreign keys.
//
// A Pipeline runs ten file-to-file stages in order. Every stage reads its
// inputs from disk and writes its outputs to disk, so a stage can be rerun on
// its own once the stages before it have produced their artifacts.
package routemap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
)

// Pipeline runs the cleaning stages and reports stage events
type Pipeline interface {
	// Run executes every stage in order and stops at the first failure
	Run(ctx context.Context) (*RunResult, error)

	// RunStage executes a single stage
	RunStage(ctx context.Context, stage Stage) (*StageResult, error)

	// Paths returns the configured directories
	Paths() Paths

	// OnStageStarted registers a callback for when a stage starts
	OnStageStarted(StageStartedHook)

	// OnStageCompleted registers a callback for when a stage completes
	OnStageCompleted(StageCompletedHook)

	// OnStageFailed registers a callback for when a stage fails
	OnStageFailed(StageFailedHook)
}

// Paths are the directories a pipeline reads from and writes to
type Paths struct {
	Source   string
	Clean    string
	Mappings string
}

// pipeline is the internal implementation of the Pipeline interface
type pipeline struct {
	*hooks
	config *config
}

// New creates a new Pipeline with the given options
func New(opts ...Option) (Pipeline, error) {
	p := &pipeline{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	for _, opt := range opts {
		if err := opt(p.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	return p, nil
}

func (p *pipeline) Paths() Paths {
	return Paths{
		Source:   p.config.sourceDir,
		Clean:    p.config.cleanDir,
		Mappings: p.config.mappingsDir,
	}
}

// Run executes every stage in order. Later stages read the artifacts of
// earlier ones, so the first error ends the run; the results of the stages
// that completed are returned along with it.
func (p *pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}

	for _, stage := range Stages() {
		sr, err := p.RunStage(ctx, stage)
		if err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		result.Stages = append(result.Stages, *sr)
	}

	result.Duration = time.Since(start)
	p.config.logger.Info().
		Int("stages", len(result.Stages)).
		Dur("duration", result.Duration).
		Msg("Pipeline completed")
	return result, nil
}

// RunStage executes a single stage.
func (p *pipeline) RunStage(ctx context.Context, stage Stage) (*StageResult, error) {
	run, ok := p.stageFuncs()[stage]
	if !ok {
		return nil, errors.NewValidationError("stage", string(stage), "unknown stage")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapStage(string(stage), fmt.Errorf("%w: %w", errors.ErrCanceled, err))
	}

	ctx = logging.WithStage(logging.WithLogger(ctx, p.config.logger), string(stage))
	logger := logging.FromContext(ctx)

	p.triggerStarted(stage)
	logger.Debug().Msg("Stage started")

	start := time.Now()
	sr, err := run(ctx)
	if err != nil {
		err = errors.WrapStage(string(stage), err)
		logger.Error().Err(err).Msg("Stage failed")
		p.triggerFailed(stage, err)
		return nil, err
	}

	sr.Stage = stage
	sr.Duration = time.Since(start)
	logger.Info().
		Int("read", sr.Read).
		Int("written", sr.Written).
		Int("changed", sr.Changed).
		Int("dropped", sr.Dropped).
		Int("malformed", sr.Malformed).
		Msg("Stage completed")
	p.triggerCompleted(*sr)
	return sr, nil
}

func (p *pipeline) source(name string) string {
	return filepath.Join(p.config.sourceDir, name)
}

func (p *pipeline) clean(name string) string {
	return filepath.Join(p.config.cleanDir, name)
}

func (p *pipeline) mapping(name string) string {
	return filepath.Join(p.config.mappingsDir, name)
}
