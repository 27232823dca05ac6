package routes

import (
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/table"
)

// KeySet is a set of valid foreign key values.
type KeySet map[string]struct{}

// NewKeySet builds a key set from values, trimmed, skipping empty ones and
// the \N sentinel, which never identifies a row.
func NewKeySet(values ...string) KeySet {
	k := make(KeySet, len(values))
	for _, v := range values {
		k.add(v)
	}
	return k
}

func (k KeySet) add(v string) {
	if v = strings.TrimSpace(v); v != "" && v != constants.UnknownIDSentinel {
		k[v] = struct{}{}
	}
}

// Has reports whether v is a valid key.
func (k KeySet) Has(v string) bool {
	_, ok := k[v]
	return ok
}

// BuildKeySet collects the values of column from a reference table. Rows too
// short for the column are skipped.
func BuildKeySet(t *table.Table, column int) KeySet {
	k := make(KeySet, t.Len())
	for _, row := range t.Rows {
		if v, ok := table.Field(row, column); ok {
			k.add(v)
		}
	}
	return k
}

// NameIndex maps an airport name to its ID.
type NameIndex map[string]string

// BuildNameIndex maps the nameCol value of every airport row to its idCol
// value. When a name repeats the later row wins.
func BuildNameIndex(airports *table.Table, idCol, nameCol int) NameIndex {
	idx := make(NameIndex, airports.Len())
	for _, row := range airports.Rows {
		id, ok1 := table.Field(row, idCol)
		name, ok2 := table.Field(row, nameCol)
		if !ok1 || !ok2 {
			continue
		}
		idx[name] = id
	}
	return idx
}
