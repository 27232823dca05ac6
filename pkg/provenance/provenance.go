// Package provenance records where every reconciled value came from: the
// dataset and column it was read from, the canonical value it was mapped to
// and the score that justified the mapping.
package provenance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
)

// Reasons recorded for accepted mappings.
const (
	ReasonExact = "exact match"
	ReasonFuzzy = "fuzzy match at or above threshold"
)

// Provenance tracks the origin of one mapped value.
type Provenance struct {
	Source    string    `yaml:"source"`    // Dataset label (e.g., "GDP")
	Field     string    `yaml:"field"`     // Column the original value was read from
	Original  string    `yaml:"original"`  // Value as it appeared in the source
	Canonical string    `yaml:"canonical"` // Value it was mapped to
	Score     float64   `yaml:"score"`     // Similarity score (0 to 100)
	Threshold float64   `yaml:"threshold"` // Acceptance threshold in effect
	Reason    string    `yaml:"reason"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Map tracks provenance for multiple values.
type Map map[string][]Provenance // key is "source:field:original"

// Tracker manages provenance tracking during reconciliation.
type Tracker interface {
	// Track records provenance for a value
	Track(p Provenance)

	// Map returns the complete provenance map
	Map() Map

	// Len returns the number of tracked records
	Len() int
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker. A disabled tracker records nothing.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a value.
func (p *tracker) Track(history Provenance) {
	if !p.enabled {
		return
	}

	if history.Timestamp.IsZero() {
		history.Timestamp = time.Now().UTC()
	}
	if history.Reason == "" {
		history.Reason = ReasonFor(history.Score)
	}

	key := makeKey(history.Source, history.Field, history.Original)
	p.provenance[key] = append(p.provenance[key], history)
}

// Map returns a copy of the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

func (p *tracker) Len() int {
	n := 0
	for _, v := range p.provenance {
		n += len(v)
	}
	return n
}

func makeKey(source, field, original string) string {
	return fmt.Sprintf("%s:%s:%s", source, field, original)
}

// ReasonFor describes why a mapping with the given score was accepted.
func ReasonFor(score float64) string {
	if score >= constants.MaxScore {
		return ReasonExact
	}
	return ReasonFuzzy
}

// Report summarizes provenance per dataset column.
type Report struct {
	Columns map[string]ColumnProvenance // key is "source:field"
}

// ColumnProvenance contains provenance for a single column of a dataset.
type ColumnProvenance struct {
	Source  string
	Field   string
	Exact   int
	Fuzzy   int
	Entries []Provenance // sorted by original value
}

// GenerateReport creates a provenance report from a Map.
func GenerateReport(provenance Map) *Report {
	report := &Report{
		Columns: make(map[string]ColumnProvenance),
	}

	for key, infos := range provenance {
		parts := strings.SplitN(key, ":", 3)
		if len(parts) != 3 || len(infos) == 0 {
			continue
		}

		columnKey := parts[0] + ":" + parts[1]
		column, exists := report.Columns[columnKey]
		if !exists {
			column = ColumnProvenance{Source: parts[0], Field: parts[1]}
		}

		// the latest record for an original is the one in effect
		current := infos[0]
		for _, info := range infos[1:] {
			if info.Timestamp.After(current.Timestamp) {
				current = info
			}
		}
		if current.Score >= constants.MaxScore {
			column.Exact++
		} else {
			column.Fuzzy++
		}
		column.Entries = append(column.Entries, current)
		report.Columns[columnKey] = column
	}

	for key, column := range report.Columns {
		sort.Slice(column.Entries, func(i, j int) bool {
			return column.Entries[i].Original < column.Entries[j].Original
		})
		report.Columns[key] = column
	}

	return report
}

// String generates a string representation of the provenance report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	keys := make([]string, 0, len(r.Columns))
	for key := range r.Columns {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		column := r.Columns[key]
		sb.WriteString(fmt.Sprintf("%s: %s (%d exact, %d fuzzy)\n", column.Source, column.Field, column.Exact, column.Fuzzy))
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")

		for _, entry := range column.Entries {
			if entry.Original == entry.Canonical {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s -> %s (%.1f)\n", entry.Original, entry.Canonical, entry.Score))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// File represents a provenance file stored on disk.
type File struct {
	Generated  time.Time `yaml:"generated"`
	Provenance Map       `yaml:"provenance"`
}

// Save writes provenance data to a YAML file.
func Save(path string, provenance Map) error {
	data, err := yaml.MarshalWithOptions(&File{
		Generated:  time.Now().UTC(),
		Provenance: provenance,
	}, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, constants.FilePermissions))
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &pf, nil
}
