// Package table provides the in-memory tabular structure shared by every
// pipeline stage together with CSV loading and writing.
//
// A field is null when it is the empty string, which is how the source CSV
// files encode missing values. Rows may be shorter than the header; loading
// never rejects them so that row-level checks can count them as malformed.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/routemap/pkg/errors"
)

// Null is the value of a missing field.
const Null = ""

// Table is a named header plus rows of string fields.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// New creates a table with the given header and rows.
func New(name string, header []string, rows ...[]string) *Table {
	return &Table{Name: name, Header: header, Rows: rows}
}

// IsNull reports whether a field value is missing.
func IsNull(v string) bool {
	return v == Null
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, errors.NewMissingColumnError(t.Name, name)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, err := t.Column(name)
	return err == nil
}

// ResolveColumn returns the column index for a key which can be a header
// name (matched exactly, then case-insensitively) or a numeric index.
func (t *Table) ResolveColumn(key string) (int, error) {
	if idx, err := t.Column(key); err == nil {
		return idx, nil
	}
	trimmed := strings.TrimSpace(key)
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), trimmed) {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(trimmed); err == nil && idx >= 0 && (len(t.Header) == 0 || idx < len(t.Header)) {
		return idx, nil
	}
	return -1, errors.NewMissingColumnError(t.Name, key)
}

// Field returns the value at idx, or false when the row is too short.
func Field(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return Null, false
	}
	return row[idx], true
}

// Values returns the value of column idx for every row, null for short rows.
func (t *Table) Values(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i], _ = Field(row, idx)
	}
	return values
}

// Distinct returns the sorted, deduplicated non-null values of column idx.
func (t *Table) Distinct(idx int) []string {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		v, ok := Field(row, idx)
		if !ok || IsNull(v) {
			continue
		}
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:   t.Name,
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// Empty returns a table with the same name and header and no rows.
func (t *Table) Empty() *Table {
	return &Table{
		Name:   t.Name,
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, 0, len(t.Rows)),
	}
}

// Append adds rows to the table.
func (t *Table) Append(rows ...[]string) {
	t.Rows = append(t.Rows, rows...)
}

// NullRow returns a row of header width with every field null.
func (t *Table) NullRow() []string {
	return make([]string, len(t.Header))
}
