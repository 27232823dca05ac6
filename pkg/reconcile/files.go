package reconcile

import (
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/table"
)

// MappingFileName returns the mapping file name for a source label.
func MappingFileName(label string) string {
	return "mapped_" + strings.ToLower(label) + "_countries.csv"
}

// UnmappedFileName returns the unmapped-names file name for a source label.
func UnmappedFileName(label string) string {
	return "unmapped_" + strings.ToLower(label) + "_countries.csv"
}

// ProvenanceFileName returns the provenance report file name for a source label.
func ProvenanceFileName(label string) string {
	return "mapped_" + strings.ToLower(label) + "_provenance.yaml"
}

// MappingTableOf renders a mapping table as a two-column table, one row per
// mapping in original order. The source label is encoded in the first header.
func MappingTableOf(label string, m MappingTable) *table.Table {
	t := table.New(MappingFileName(label), []string{
		constants.OriginalCountryHeaderPrefix + label,
		constants.MappedCountryHeader,
	})
	for _, mapping := range m.Sorted() {
		t.Append([]string{mapping.Original, mapping.Canonical})
	}
	return t
}

// WriteMappingFile persists a mapping table.
func WriteMappingFile(path, label string, m MappingTable) error {
	return MappingTableOf(label, m).Write(path)
}

// ReadMappingFile loads a mapping file written by WriteMappingFile and returns
// the source label from its header. Scores are not persisted, so every loaded
// mapping carries the maximum score.
func ReadMappingFile(path string) (MappingTable, string, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, "", err
	}
	if len(t.Header) < 2 {
		return nil, "", errors.NewMissingColumnError(t.Name, constants.MappedCountryHeader)
	}

	label, ok := strings.CutPrefix(t.Header[0], constants.OriginalCountryHeaderPrefix)
	if !ok {
		return nil, "", errors.NewMissingColumnError(t.Name, constants.OriginalCountryHeaderPrefix+"<source>")
	}
	target, err := t.Column(constants.MappedCountryHeader)
	if err != nil {
		return nil, "", err
	}

	m := make(MappingTable, t.Len())
	for i, row := range t.Rows {
		original, ok1 := table.Field(row, 0)
		canonical, ok2 := table.Field(row, target)
		if !ok1 || !ok2 {
			return nil, "", errors.NewParseError("csv", path, errors.NewMalformedRowError(i+1, len(row), target+1).Error(), nil)
		}
		if table.IsNull(original) || table.IsNull(canonical) {
			continue
		}
		m[original] = Mapping{Original: original, Canonical: canonical, Score: constants.MaxScore}
	}
	return m, label, nil
}

// WriteUnmappedFile persists the canonical names that received no mapping.
func WriteUnmappedFile(path string, names []string) error {
	return WriteCanonicalFile(path, constants.UnmappedCountriesHeader, names)
}

// WriteCanonicalFile writes names as a single-column file.
func WriteCanonicalFile(path, header string, names []string) error {
	t := table.New(header, []string{header})
	for _, n := range names {
		t.Append([]string{n})
	}
	return t.Write(path)
}

// ReadCanonicalFile reads a single-column file written by WriteCanonicalFile.
func ReadCanonicalFile(path, header string) (CanonicalSet, error) {
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.Column(header)
	if err != nil {
		return nil, err
	}
	return CanonicalSet(t.Distinct(idx)), nil
}

