package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
)

// Load reads a comma-separated file with a header row.
// The table is named after the file without its extension.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingFileError(path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	t, err := Read(name, f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return t, nil
}

// Read parses CSV data from r. The first record becomes the header.
func Read(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are kept for row-level checks
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	t := &Table{Name: name}
	if len(records) == 0 {
		return t, nil
	}
	t.Header = records[0]
	t.Rows = records[1:]
	return t, nil
}

// Write writes the table to path, creating parent directories as needed.
func (t *Table) Write(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := t.Encode(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}

// Encode writes the header (when present) and rows as CSV to w.
func (t *Table) Encode(w io.Writer) error {
	writer := csv.NewWriter(w)
	if len(t.Header) > 0 {
		if err := writer.Write(t.Header); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return writer.Error()
}
