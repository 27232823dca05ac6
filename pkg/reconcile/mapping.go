package reconcile

import (
	"sort"
)

// Mapping is one accepted original → canonical association.
type Mapping struct {
	Original  string
	Canonical string
	Score     float64
}

// Lookup resolves a value to its replacement.
type Lookup interface {
	Lookup(value string) (string, bool)
}

// MappingTable holds at most one mapping per original name.
type MappingTable map[string]Mapping

// Lookup returns the canonical name for original.
func (m MappingTable) Lookup(original string) (string, bool) {
	mapping, ok := m[original]
	if !ok {
		return "", false
	}
	return mapping.Canonical, true
}

// Originals returns the mapped original names in sorted order.
func (m MappingTable) Originals() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Sorted returns the mappings ordered by original name.
func (m MappingTable) Sorted() []Mapping {
	out := make([]Mapping, 0, len(m))
	for _, k := range m.Originals() {
		out = append(out, m[k])
	}
	return out
}

// Targets returns the set of canonical names that received a mapping.
func (m MappingTable) Targets() map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for _, mapping := range m {
		out[mapping.Canonical] = struct{}{}
	}
	return out
}

// Invert returns the canonical → original table. When several originals map
// to the same canonical name the highest score wins, and equal scores keep
// the lexicographically first original.
func (m MappingTable) Invert() MappingTable {
	inv := make(MappingTable, len(m))
	for _, original := range m.Originals() {
		mapping := m[original]
		if cur, ok := inv[mapping.Canonical]; ok && cur.Score >= mapping.Score {
			continue
		}
		inv[mapping.Canonical] = Mapping{
			Original:  mapping.Canonical,
			Canonical: mapping.Original,
			Score:     mapping.Score,
		}
	}
	return inv
}

// Unmapped returns the members of canonical that are not a mapping target.
func (m MappingTable) Unmapped(canonical CanonicalSet) []string {
	targets := m.Targets()
	out := make([]string, 0)
	for _, name := range canonical {
		if _, ok := targets[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
