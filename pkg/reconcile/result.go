package reconcile

import (
	"time"

	"github.com/agentstation/routemap/pkg/errors"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Source is the label of the dataset the names were read from
	Source string

	// Field is the column the names were read from
	Field string

	// Threshold that was in effect
	Threshold float64

	// Mappings holds one accepted mapping per original name
	Mappings MappingTable

	// UnmappedCanonical lists canonical names that no original mapped to, sorted
	UnmappedCanonical []string

	// NoCandidates lists names with no candidate at or above the threshold, sorted by name
	NoCandidates []*errors.NoCandidateError

	// Stats about the reconciliation
	Stats Stats
}

// Stats contains counts about a reconciliation.
type Stats struct {
	Names     int // distinct non-null source names
	Canonical int
	Mapped    int
	Unmatched int // names without an acceptable candidate
	Unmapped  int // canonical names without any mapping
	Duration  time.Duration
}

// Unmatched returns the names that were left without a mapping.
func (r *Result) Unmatched() []string {
	out := make([]string, len(r.NoCandidates))
	for i, nc := range r.NoCandidates {
		out[i] = nc.Name
	}
	return out
}
