package reconcile

import (
	"sort"

	"github.com/agentstation/routemap/pkg/table"
)

// CanonicalSet is the sorted, deduplicated vocabulary every other spelling is
// reconciled against.
type CanonicalSet []string

// NewCanonicalSet builds a canonical set from arbitrary names, dropping nulls
// and duplicates.
func NewCanonicalSet(names ...string) CanonicalSet {
	seen := make(map[string]struct{}, len(names))
	set := make(CanonicalSet, 0, len(names))
	for _, n := range names {
		if table.IsNull(n) {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		set = append(set, n)
	}
	sort.Strings(set)
	return set
}

// Contains reports whether name is a member of the set.
func (c CanonicalSet) Contains(name string) bool {
	i := sort.SearchStrings(c, name)
	return i < len(c) && c[i] == name
}

// Len returns the number of members.
func (c CanonicalSet) Len() int {
	return len(c)
}

// BuildCanonicalSet extracts the non-null values of countryColumn from t.
func BuildCanonicalSet(t *table.Table, countryColumn string) (CanonicalSet, error) {
	values, err := ExtractUnique(t, countryColumn)
	if err != nil {
		return nil, err
	}
	return CanonicalSet(values), nil
}

// ExtractUnique returns the sorted distinct non-null values of column.
func ExtractUnique(t *table.Table, column string) ([]string, error) {
	idx, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return t.Distinct(idx), nil
}
