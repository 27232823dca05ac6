// Package dedupe neutralizes duplicated business keys in a reference table.
package dedupe

import (
	"sort"

	"github.com/agentstation/routemap/pkg/table"
)

// Report lists, per key column, the values that occurred more than once.
type Report struct {
	Duplicates map[string][]string // column -> sorted duplicated values
	Nulled     map[string]int      // column -> fields set to null
}

// Total returns the number of fields set to null across all columns.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Nulled {
		n += c
	}
	return n
}

// Dedupe returns a copy of t in which every non-null value that occurs in two
// or more rows of a key column is nulled in all of those rows. Columns are
// handled independently, so a row can lose any subset of its keys.
func Dedupe(t *table.Table, keyColumns ...string) (*table.Table, Report, error) {
	indices := make([]int, len(keyColumns))
	for i, name := range keyColumns {
		idx, err := t.Column(name)
		if err != nil {
			return nil, Report{}, err
		}
		indices[i] = idx
	}

	out := t.Clone()
	report := Report{
		Duplicates: make(map[string][]string, len(keyColumns)),
		Nulled:     make(map[string]int, len(keyColumns)),
	}

	for i, idx := range indices {
		counts := make(map[string]int)
		for _, row := range out.Rows {
			if v, ok := table.Field(row, idx); ok && !table.IsNull(v) {
				counts[v]++
			}
		}

		dups := make([]string, 0)
		for v, n := range counts {
			if n > 1 {
				dups = append(dups, v)
			}
		}
		if len(dups) == 0 {
			continue
		}
		sort.Strings(dups)

		column := keyColumns[i]
		report.Duplicates[column] = dups
		for _, row := range out.Rows {
			if v, ok := table.Field(row, idx); ok && counts[v] > 1 {
				row[idx] = table.Null
				report.Nulled[column]++
			}
		}
	}

	return out, report, nil
}
