package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/table"
)

var gdpHeader = []string{"Country Name", "Country Code", "2020"}

func airports(countries ...string) *table.Table {
	t := table.New("airports", []string{"Name", "Country"})
	for _, c := range countries {
		t.Append([]string{"Airport in " + c, c})
	}
	return t
}

func TestApplyMapping(t *testing.T) {
	gdp := table.New("GDP", gdpHeader,
		[]string{"Korea, South", "KOR", "1.6"},
		[]string{"Germany", "DEU", "3.8"},
		[]string{"Euro area", "EMU", "13.0"},
		[]string{"", "XXX", ""},
		[]string{"short"},
	)
	m := LookupFunc(func(v string) (string, bool) {
		if v == "Korea, South" {
			return "South Korea", true
		}
		if v == "Germany" {
			return "Germany", true
		}
		return "", false
	})

	out, stats, err := ApplyMapping(gdp, "Country Name", m)
	require.NoError(t, err)
	assert.Equal(t, gdp.Len(), out.Len())
	assert.Equal(t, 1, stats.Replaced)
	assert.Equal(t, []string{"South Korea", "Germany", "Euro area", "", "short"}, out.Values(0))
	assert.Equal(t, "Korea, South", gdp.Rows[0][0], "input must not be modified")
}

func TestApplyMappingNeverDropsRows(t *testing.T) {
	none := LookupFunc(func(string) (string, bool) { return "", false })
	all := LookupFunc(func(string) (string, bool) { return "X", true })

	for _, tt := range []*table.Table{
		table.New("empty", gdpHeader),
		table.New("GDP", gdpHeader, []string{"A", "", ""}, []string{"A", "", ""}, []string{}),
	} {
		for _, m := range []Lookup{none, all} {
			out, _, err := ApplyMapping(tt, "Country Name", m)
			require.NoError(t, err)
			assert.Equal(t, tt.Len(), out.Len())
		}
	}
}

func TestApplyMappingMissingColumn(t *testing.T) {
	_, _, err := ApplyMapping(table.New("GDP", gdpHeader), "Country", LookupFunc(func(string) (string, bool) { return "", false }))
	assert.True(t, errors.IsMissingColumn(err))
}

func TestAlignCoverageFilterAndPad(t *testing.T) {
	gdp := table.New("GDP", gdpHeader,
		[]string{"USA", "USA", "21.0"},
		[]string{"Germany", "DEU", "3.8"},
	)

	out, stats, err := AlignCoverage(airports("USA", "Germany", "Atlantis", "USA"), gdp, "Country", "Country Name", ModeFilterAndPad)
	require.NoError(t, err)

	assert.Equal(t, gdpHeader, out.Header)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"USA", "USA", "21.0"}, out.Rows[0])
	assert.Equal(t, []string{"Germany", "DEU", "3.8"}, out.Rows[1])
	assert.Equal(t, []string{"Atlantis", "", ""}, out.Rows[2])
	assert.Equal(t, 1, stats.Padded)
	assert.Equal(t, []string{"Atlantis"}, stats.PaddedCountries)
	assert.Equal(t, 0, stats.Filtered)
}

func TestAlignCoverageFilterAndPadRestrictsToPrimary(t *testing.T) {
	gdp := table.New("GDP", gdpHeader,
		[]string{"Euro area", "EMU", "13.0"},
		[]string{"Germany", "DEU", "3.8"},
		[]string{"", "WLD", "84.0"},
		[]string{"France", "FRA", "2.6"},
		[]string{"x"},
	)
	primary := airports("Germany", "Zambia", "", "Chile")

	out, stats, err := AlignCoverage(primary, gdp, "Country", "Country Name", ModeFilterAndPad)
	require.NoError(t, err)

	countries := out.Values(0)
	assert.Equal(t, []string{"Germany", "Chile", "Zambia"}, countries)
	assert.Equal(t, 4, stats.Filtered)
	assert.Equal(t, []string{"Chile", "Zambia"}, stats.PaddedCountries)

	wanted := map[string]bool{"Germany": true, "Zambia": true, "Chile": true}
	for _, c := range countries {
		assert.True(t, wanted[c], c)
	}
}

func TestAlignCoveragePadOnly(t *testing.T) {
	gdp := table.New("GDP", gdpHeader,
		[]string{"Euro area", "EMU", "13.0"},
		[]string{"Germany", "DEU", "3.8"},
	)
	airlines := table.New("airlines", []string{"ID", "Name", "Country"},
		[]string{"1", "Lufthansa", "Germany"},
		[]string{"2", "Aloha", "Hawaii"},
	)

	out, stats, err := AlignCoverage(airlines, gdp, "Country", "Country Name", ModePadOnly)
	require.NoError(t, err)
	assert.Equal(t, []string{"Euro area", "Germany", "Hawaii"}, out.Values(0))
	assert.Equal(t, []string{"Hawaii", "", ""}, out.Rows[2])
	assert.Equal(t, 0, stats.Filtered)
	assert.Equal(t, 1, stats.Padded)
}

func TestAlignCoverageNoPaddingReturnsNewTable(t *testing.T) {
	gdp := table.New("GDP", gdpHeader, []string{"Germany", "DEU", "3.8"})

	out, stats, err := AlignCoverage(airports("Germany"), gdp, "Country", "Country Name", ModePadOnly)
	require.NoError(t, err)
	assert.Equal(t, gdp.Rows, out.Rows)
	assert.Equal(t, 0, stats.Padded)

	out.Rows[0][0] = "changed"
	assert.Equal(t, "Germany", gdp.Rows[0][0])
}

func TestAlignCoverageMissingColumns(t *testing.T) {
	gdp := table.New("GDP", gdpHeader)

	_, _, err := AlignCoverage(airports("A"), gdp, "Nation", "Country Name", ModePadOnly)
	assert.True(t, errors.IsMissingColumn(err))

	_, _, err = AlignCoverage(airports("A"), gdp, "Country", "Country", ModePadOnly)
	assert.True(t, errors.IsMissingColumn(err))
}

func TestDropColumn(t *testing.T) {
	airlines := table.New("airlines", []string{"index", "ID", "Country"},
		[]string{"0", "1", "Germany"},
		[]string{"1", "2", "France"},
	)

	out, ok := DropColumn(airlines, "index")
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Country"}, out.Header)
	assert.Equal(t, [][]string{{"1", "Germany"}, {"2", "France"}}, out.Rows)
	assert.Equal(t, []string{"index", "ID", "Country"}, airlines.Header)

	same, ok := DropColumn(out, "index")
	assert.False(t, ok)
	assert.Equal(t, out.Rows, same.Rows)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeFilterAndPad, ModePadOnly} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMode("sideways")
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "unknown", Mode(42).String())
}
