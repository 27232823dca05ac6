// Package table converts pipeline results into rows for tabular CLI output.
package table

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/routemap"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// StagesToTableData converts stage results to table format. The wide form
// adds the stage details and the files written.
func StagesToTableData(results []routemap.StageResult, wide bool) Data {
	headers := []string{"Stage", "Read", "Written", "Changed", "Dropped", "Malformed", "Duration"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Details", "Outputs")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{
			string(r.Stage),
			strconv.Itoa(r.Read),
			strconv.Itoa(r.Written),
			strconv.Itoa(r.Changed),
			strconv.Itoa(r.Dropped),
			strconv.Itoa(r.Malformed),
			r.Duration.Round(time.Millisecond).String(),
		}
		if wide {
			row = append(row, FormatDetails(r), strings.Join(r.Outputs, "\n"))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FormatDetails renders the stage details as "Name: n" lines in key order.
func FormatDetails(r routemap.StageResult) string {
	caser := cases.Title(language.English)
	lines := make([]string, 0, len(r.Details))
	for _, k := range r.DetailKeys() {
		name := caser.String(strings.ReplaceAll(k, "_", " "))
		lines = append(lines, name+": "+strconv.Itoa(r.Details[k]))
	}
	return strings.Join(lines, "\n")
}
