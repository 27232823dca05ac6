// Package align rewrites country columns through a reconciliation mapping and
// aligns country coverage between two datasets.
package align

import (
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/table"
)

// Lookup resolves a country value to its replacement.
type Lookup interface {
	Lookup(value string) (string, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(value string) (string, bool)

// Lookup calls f(value).
func (f LookupFunc) Lookup(value string) (string, bool) {
	return f(value)
}

// Mode selects the coverage alignment variant.
type Mode int

const (
	// ModeFilterAndPad keeps only secondary rows whose country is in the
	// primary set, then pads the countries still missing.
	ModeFilterAndPad Mode = iota
	// ModePadOnly keeps every secondary row and pads the missing countries.
	ModePadOnly
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFilterAndPad:
		return "filter-and-pad"
	case ModePadOnly:
		return "pad-only"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "filter-and-pad", "filter":
		return ModeFilterAndPad, nil
	case "pad-only", "pad":
		return ModePadOnly, nil
	}
	return 0, errors.NewValidationError("mode", s, "must be filter-and-pad or pad-only")
}

// Stats contains counts about an alignment step.
type Stats struct {
	Rows            int // input rows
	Replaced        int // fields rewritten by ApplyMapping
	Filtered        int // rows removed by ModeFilterAndPad
	Padded          int // placeholder rows appended
	PaddedCountries []string
}

// ApplyMapping returns a copy of t with each value of countryColumn replaced
// by its mapping when one exists. Unmapped values, nulls and rows too short to
// hold the column are kept as they are, so the row count never changes.
func ApplyMapping(t *table.Table, countryColumn string, m Lookup) (*table.Table, Stats, error) {
	idx, err := t.Column(countryColumn)
	if err != nil {
		return nil, Stats{}, err
	}

	out := t.Clone()
	stats := Stats{Rows: t.Len()}
	for _, row := range out.Rows {
		value, ok := table.Field(row, idx)
		if !ok || table.IsNull(value) {
			continue
		}
		if mapped, found := m.Lookup(value); found && mapped != value {
			row[idx] = mapped
			stats.Replaced++
		}
	}
	return out, stats, nil
}

// AlignCoverage aligns the countries of secondary with those of primary.
// The result has secondary's header. Placeholder rows carry only the country,
// every other field null, and are appended in lexicographic country order.
// Null countries in primary are ignored.
func AlignCoverage(primary, secondary *table.Table, keyPrimary, keySecondary string, mode Mode) (*table.Table, Stats, error) {
	pIdx, err := primary.Column(keyPrimary)
	if err != nil {
		return nil, Stats{}, err
	}
	sIdx, err := secondary.Column(keySecondary)
	if err != nil {
		return nil, Stats{}, err
	}

	countries := primary.Distinct(pIdx)
	wanted := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		wanted[c] = struct{}{}
	}

	out := secondary.Empty()
	stats := Stats{Rows: secondary.Len()}
	present := make(map[string]struct{})
	for _, row := range secondary.Rows {
		value, ok := table.Field(row, sIdx)
		if mode == ModeFilterAndPad {
			if _, keep := wanted[value]; !ok || !keep {
				stats.Filtered++
				continue
			}
		}
		if ok && !table.IsNull(value) {
			present[value] = struct{}{}
		}
		out.Append(append([]string(nil), row...))
	}

	for _, c := range countries {
		if _, ok := present[c]; ok {
			continue
		}
		row := out.NullRow()
		row[sIdx] = c
		out.Append(row)
		stats.PaddedCountries = append(stats.PaddedCountries, c)
	}
	stats.Padded = len(stats.PaddedCountries)
	return out, stats, nil
}

// DropColumn returns a copy of t without the named column. The second result
// is false, and t is copied unchanged, when the column does not exist.
func DropColumn(t *table.Table, name string) (*table.Table, bool) {
	idx, err := t.Column(name)
	if err != nil {
		return t.Clone(), false
	}

	out := t.Empty()
	out.Header = append(out.Header[:idx:idx], t.Header[idx+1:]...)
	for _, row := range t.Rows {
		if idx >= len(row) {
			out.Append(append([]string(nil), row...))
			continue
		}
		kept := make([]string, 0, len(row)-1)
		kept = append(kept, row[:idx]...)
		kept = append(kept, row[idx+1:]...)
		out.Append(kept)
	}
	return out, true
}
