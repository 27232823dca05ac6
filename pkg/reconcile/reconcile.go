// Package reconcile maps differently spelled names from one dataset onto the
// canonical vocabulary of another using approximate string similarity.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/provenance"
	"github.com/agentstation/routemap/pkg/similarity"
	"github.com/agentstation/routemap/pkg/table"
)

// TieBreak reports whether candidate should replace best when both have the
// same score.
type TieBreak func(candidate, best string) bool

// TieBreakFirst prefers the lexicographically first candidate.
func TieBreakFirst(candidate, best string) bool {
	return candidate < best
}

// Reconciler is the main interface for reconciling names against a canonical set.
type Reconciler interface {
	// Reconcile maps every distinct non-null value of column in source
	Reconcile(ctx context.Context, source *table.Table, column string, canonical CanonicalSet) (*Result, error)

	// ReconcileNames maps the given names, ignoring nulls and duplicates
	ReconcileNames(ctx context.Context, label, field string, names []string, canonical CanonicalSet) (*Result, error)

	// Threshold returns the acceptance threshold in effect
	Threshold() float64
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	threshold  float64
	scorer     similarity.Scorer
	tieBreak   TieBreak
	provenance provenance.Tracker
	logger     *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*reconciler) error

// WithThreshold sets the minimum score (0 to 100) for a mapping to be accepted.
func WithThreshold(threshold float64) Option {
	return func(r *reconciler) error {
		if threshold < 0 || threshold > constants.MaxScore {
			return errors.NewValidationError("threshold", threshold, "must be between 0 and 100")
		}
		r.threshold = threshold
		return nil
	}
}

// WithScorer sets the similarity function.
func WithScorer(scorer similarity.Scorer) Option {
	return func(r *reconciler) error {
		if scorer == nil {
			return errors.NewValidationError("scorer", nil, "cannot be nil")
		}
		r.scorer = scorer
		return nil
	}
}

// WithTieBreak sets the rule used between candidates of equal score.
func WithTieBreak(tb TieBreak) Option {
	return func(r *reconciler) error {
		if tb == nil {
			return errors.NewValidationError("tieBreak", nil, "cannot be nil")
		}
		r.tieBreak = tb
		return nil
	}
}

// WithProvenance records every accepted mapping in tracker.
func WithProvenance(tracker provenance.Tracker) Option {
	return func(r *reconciler) error {
		r.provenance = tracker
		return nil
	}
}

// WithLogger sets the logger used for per-name decisions.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *reconciler) error {
		r.logger = logger
		return nil
	}
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	nop := zerolog.Nop()
	r := &reconciler{
		threshold:  constants.DefaultMatchThreshold,
		scorer:     similarity.WeightedRatio,
		tieBreak:   TieBreakFirst,
		provenance: provenance.NewTracker(false),
		logger:     &nop,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *reconciler) Threshold() float64 {
	return r.threshold
}

// Reconcile maps every distinct non-null value of column in source.
func (r *reconciler) Reconcile(ctx context.Context, source *table.Table, column string, canonical CanonicalSet) (*Result, error) {
	names, err := ExtractUnique(source, column)
	if err != nil {
		return nil, err
	}
	return r.ReconcileNames(ctx, source.Name, column, names, canonical)
}

// ReconcileNames evaluates each name independently against the full canonical set.
func (r *reconciler) ReconcileNames(ctx context.Context, label, field string, names []string, canonical CanonicalSet) (*Result, error) {
	start := time.Now()
	distinct := NewCanonicalSet(names...) // sorted, so results do not depend on row order

	result := &Result{
		Source:    label,
		Field:     field,
		Threshold: r.threshold,
		Mappings:  make(MappingTable, len(distinct)),
	}

	for _, name := range distinct {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		best, score, found := r.bestCandidate(name, canonical)
		if !found || score < r.threshold {
			nc := errors.NewNoCandidateError(name, best, score, r.threshold)
			result.NoCandidates = append(result.NoCandidates, nc)
			r.logger.Debug().
				Str("name", name).
				Str("best", best).
				Float64("score", score).
				Msg("no candidate at or above threshold")
			continue
		}

		result.Mappings[name] = Mapping{Original: name, Canonical: best, Score: score}
		r.provenance.Track(provenance.Provenance{
			Source:    label,
			Field:     field,
			Original:  name,
			Canonical: best,
			Score:     score,
			Threshold: r.threshold,
		})
		if name != best {
			r.logger.Debug().
				Str("name", name).
				Str("canonical", best).
				Float64("score", score).
				Msg("mapped")
		}
	}

	result.UnmappedCanonical = result.Mappings.Unmapped(canonical)
	result.Stats = Stats{
		Names:     len(distinct),
		Canonical: len(canonical),
		Mapped:    len(result.Mappings),
		Unmatched: len(result.NoCandidates),
		Unmapped:  len(result.UnmappedCanonical),
		Duration:  time.Since(start),
	}
	return result, nil
}

// bestCandidate returns the highest scoring member of canonical for name.
// A name that is itself canonical always maps to itself with the maximum score.
func (r *reconciler) bestCandidate(name string, canonical CanonicalSet) (string, float64, bool) {
	if canonical.Contains(name) {
		return name, constants.MaxScore, true
	}

	var (
		best      string
		bestScore float64
		found     bool
	)
	for _, candidate := range canonical {
		score := r.scorer.Score(name, candidate)
		switch {
		case !found || score > bestScore:
			best, bestScore, found = candidate, score, true
		case score == bestScore && r.tieBreak(candidate, best):
			best = candidate
		}
	}
	return best, bestScore, found
}
