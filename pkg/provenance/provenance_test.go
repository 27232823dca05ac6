package provenance

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerTrack(t *testing.T) {
	tr := NewTracker(true)
	tr.Track(Provenance{Source: "GDP", Field: "Country Name", Original: "Bahamas, The", Canonical: "Bahamas", Score: 90})
	tr.Track(Provenance{Source: "GDP", Field: "Country Name", Original: "Germany", Canonical: "Germany", Score: 100})

	assert.Equal(t, 2, tr.Len())

	m := tr.Map()
	assert.Len(t, m, 2)
	got := m["GDP:Country Name:Bahamas, The"]
	require.Len(t, got, 1)
	assert.Equal(t, "Bahamas", got[0].Canonical)
	assert.Equal(t, ReasonFuzzy, got[0].Reason)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Equal(t, ReasonExact, m["GDP:Country Name:Germany"][0].Reason)
}

func TestDisabledTracker(t *testing.T) {
	tr := NewTracker(false)
	tr.Track(Provenance{Source: "GDP", Field: "Country Name", Original: "x", Canonical: "y", Score: 95})

	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Map())
}

func TestMapReturnsCopy(t *testing.T) {
	tr := NewTracker(true)
	tr.Track(Provenance{Source: "GDP", Field: "Country Name", Original: "x", Canonical: "y", Score: 95})

	m := tr.Map()
	m["GDP:Country Name:x"][0].Canonical = "changed"
	assert.Equal(t, "y", tr.Map()["GDP:Country Name:x"][0].Canonical)
}

func TestGenerateReport(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := Map{
		"GDP:Country Name:Korea, Rep.": {
			{Source: "GDP", Field: "Country Name", Original: "Korea, Rep.", Canonical: "North Korea", Score: 91, Timestamp: now},
			{Source: "GDP", Field: "Country Name", Original: "Korea, Rep.", Canonical: "South Korea", Score: 92, Timestamp: now.Add(time.Second)},
		},
		"GDP:Country Name:Germany": {
			{Source: "GDP", Field: "Country Name", Original: "Germany", Canonical: "Germany", Score: 100, Timestamp: now},
		},
		"malformed": {{Original: "ignored"}},
	}

	report := GenerateReport(m)
	require.Len(t, report.Columns, 1)

	column := report.Columns["GDP:Country Name"]
	assert.Equal(t, 1, column.Exact)
	assert.Equal(t, 1, column.Fuzzy)
	require.Len(t, column.Entries, 2)
	assert.Equal(t, "Germany", column.Entries[0].Original)
	assert.Equal(t, "South Korea", column.Entries[1].Canonical)

	out := report.String()
	assert.Contains(t, out, "GDP: Country Name (1 exact, 1 fuzzy)")
	assert.Contains(t, out, "Korea, Rep. -> South Korea (92.0)")
	assert.NotContains(t, out, "Germany -> Germany")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mapped_gdp_provenance.yaml")

	tr := NewTracker(true)
	tr.Track(Provenance{Source: "GDP", Field: "Country Name", Original: "Viet Nam", Canonical: "Vietnam", Score: 93.3, Threshold: 90})
	require.NoError(t, Save(path, tr.Map()))

	pf, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, pf)
	got := pf.Provenance["GDP:Country Name:Viet Nam"]
	require.Len(t, got, 1)
	assert.Equal(t, "Vietnam", got[0].Canonical)
	assert.InDelta(t, 93.3, got[0].Score, 1e-9)
	assert.Equal(t, 90.0, got[0].Threshold)
}

func TestLoadMissingFile(t *testing.T) {
	pf, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, pf)
}
