package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap"
)

func TestStagesToTableData(t *testing.T) {
	results := []routemap.StageResult{
		{
			Stage:     routemap.StageValidate,
			Outputs:   []string{"clean_data/routes_fully_validated.csv"},
			Read:      10,
			Written:   7,
			Dropped:   2,
			Malformed: 1,
			Details:   map[string]int{"unknown equipment": 1, "unknown airline": 1},
			Duration:  1500 * time.Microsecond,
		},
	}

	data := StagesToTableData(results, false)
	assert.Len(t, data.Headers, 7)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"validate", "10", "7", "0", "2", "1", "2ms"}, data.Rows[0])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))

	wide := StagesToTableData(results, true)
	assert.Equal(t, "Details", wide.Headers[7])
	assert.Equal(t, "Unknown Airline: 1\nUnknown Equipment: 1", wide.Rows[0][7])
	assert.Equal(t, "clean_data/routes_fully_validated.csv", wide.Rows[0][8])
}

func TestFormatDetails(t *testing.T) {
	r := routemap.StageResult{Details: map[string]int{"no_candidate": 3, "canonical": 200}}
	assert.Equal(t, "Canonical: 200\nNo Candidate: 3", FormatDetails(r))
	assert.Equal(t, "", FormatDetails(routemap.StageResult{}))
}
