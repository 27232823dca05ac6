package routemap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/similarity"
)

// Direction selects which dataset's spelling becomes the shared country key.
type Direction int

const (
	// DirectionToSource rewrites airports and airlines to the GDP spelling.
	DirectionToSource Direction = iota
	// DirectionToCanonical rewrites the GDP table to the airports spelling.
	DirectionToCanonical
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionToCanonical {
		return "to-canonical"
	}
	return "to-source"
}

// ParseDirection parses a direction name as returned by Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "to-source", "source", "":
		return DirectionToSource, nil
	case "to-canonical", "canonical":
		return DirectionToCanonical, nil
	}
	return 0, errors.NewValidationError("direction", s, "must be to-source or to-canonical")
}

// config holds the pipeline configuration
type config struct {
	sourceDir   string
	cleanDir    string
	mappingsDir string
	threshold   float64
	scorer      similarity.Scorer
	direction   Direction
	provenance  bool
	logger      *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		sourceDir:   constants.DefaultSourceDir,
		cleanDir:    constants.DefaultCleanDir,
		mappingsDir: constants.DefaultMappingsDir,
		threshold:   constants.DefaultMatchThreshold,
		scorer:      similarity.WeightedRatio,
		direction:   DirectionToSource,
		provenance:  true,
		logger:      logging.Default(),
	}
}

// Option is a function that configures a Pipeline instance
type Option func(*config) error

// WithSourceDir configures the directory holding the raw datasets
func WithSourceDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("source_dir", dir, "cannot be empty")
		}
		c.sourceDir = dir
		return nil
	}
}

// WithCleanDir configures the directory receiving cleaned datasets
func WithCleanDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("clean_dir", dir, "cannot be empty")
		}
		c.cleanDir = dir
		return nil
	}
}

// WithMappingsDir configures the directory receiving canonical sets and mapping tables
func WithMappingsDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("mappings_dir", dir, "cannot be empty")
		}
		c.mappingsDir = dir
		return nil
	}
}

// WithThreshold configures the minimum similarity score for a mapping
func WithThreshold(threshold float64) Option {
	return func(c *config) error {
		if threshold < 0 || threshold > constants.MaxScore {
			return errors.NewValidationError("threshold", threshold, "must be between 0 and 100")
		}
		c.threshold = threshold
		return nil
	}
}

// WithScorer configures the similarity function used for reconciliation
func WithScorer(scorer similarity.Scorer) Option {
	return func(c *config) error {
		if scorer == nil {
			return errors.NewValidationError("scorer", nil, "cannot be nil")
		}
		c.scorer = scorer
		return nil
	}
}

// WithDirection configures which spelling the clean stage rewrites to
func WithDirection(d Direction) Option {
	return func(c *config) error {
		c.direction = d
		return nil
	}
}

// WithProvenance configures whether a provenance report is written
func WithProvenance(enabled bool) Option {
	return func(c *config) error {
		c.provenance = enabled
		return nil
	}
}

// WithLogger configures the logger used by every stage
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}
