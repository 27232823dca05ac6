package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/provenance"
	"github.com/agentstation/routemap/pkg/similarity"
	"github.com/agentstation/routemap/pkg/table"
)

func gdpTable(countries ...string) *table.Table {
	t := table.New("GDP", []string{"Country Name", "Country Code", "2020"})
	for _, c := range countries {
		t.Append([]string{c, "XXX", "1.0"})
	}
	return t
}

func TestBuildCanonicalSet(t *testing.T) {
	airports := table.New("airports", []string{"Name", "City", "Country"},
		[]string{"Heathrow", "London", "United Kingdom"},
		[]string{"Gatwick", "London", "United Kingdom"},
		[]string{"Tegel", "Berlin", "Germany"},
		[]string{"Nowhere", "", ""},
		[]string{"short"},
	)

	set, err := BuildCanonicalSet(airports, "Country")
	require.NoError(t, err)
	assert.Equal(t, CanonicalSet{"Germany", "United Kingdom"}, set)
	assert.True(t, set.Contains("Germany"))
	assert.False(t, set.Contains("France"))

	_, err = BuildCanonicalSet(airports, "Nation")
	assert.True(t, errors.IsMissingColumn(err))

	cities, err := ExtractUnique(airports, "City")
	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "London"}, cities)
}

func TestNewCanonicalSet(t *testing.T) {
	assert.Equal(t, CanonicalSet{"A", "B"}, NewCanonicalSet("B", "", "A", "B"))
	assert.Empty(t, NewCanonicalSet())
}

func TestReconcileCanonicalNamesMapToThemselves(t *testing.T) {
	canonical := NewCanonicalSet("Germany", "United States", "Zimbabwe")
	r, err := New()
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), gdpTable("Germany", "Zimbabwe", "Germany"), "Country Name", canonical)
	require.NoError(t, err)

	require.Len(t, result.Mappings, 2)
	for _, name := range []string{"Germany", "Zimbabwe"} {
		assert.Equal(t, Mapping{Original: name, Canonical: name, Score: 100}, result.Mappings[name])
	}
	assert.Equal(t, []string{"United States"}, result.UnmappedCanonical)
	assert.Empty(t, result.NoCandidates)
}

func TestReconcileFuzzy(t *testing.T) {
	canonical := NewCanonicalSet("Germany", "South Korea", "United States")
	r, err := New()
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), gdpTable("Korea, South", "Euro area", "Germany", ""), "Country Name", canonical)
	require.NoError(t, err)

	got, ok := result.Mappings.Lookup("Korea, South")
	require.True(t, ok)
	assert.Equal(t, "South Korea", got)
	assert.GreaterOrEqual(t, result.Mappings["Korea, South"].Score, 90.0)

	_, ok = result.Mappings.Lookup("Euro area")
	assert.False(t, ok)
	require.Len(t, result.NoCandidates, 1)
	assert.Equal(t, "Euro area", result.NoCandidates[0].Name)
	assert.True(t, errors.IsNoCandidate(result.NoCandidates[0]))
	assert.Equal(t, []string{"Euro area"}, result.Unmatched())

	assert.Equal(t, []string{"United States"}, result.UnmappedCanonical)
	assert.Equal(t, 3, result.Stats.Names)
	assert.Equal(t, 2, result.Stats.Mapped)
	assert.Equal(t, 1, result.Stats.Unmatched)
	assert.Equal(t, 1, result.Stats.Unmapped)
}

func TestReconcileThreshold(t *testing.T) {
	scorer := similarity.ScorerFunc(func(a, b string) float64 {
		if b == "Target" {
			return 89.9
		}
		return 0
	})
	canonical := NewCanonicalSet("Other", "Target")

	strict, err := New(WithScorer(scorer))
	require.NoError(t, err)
	result, err := strict.ReconcileNames(context.Background(), "GDP", "Country Name", []string{"Source"}, canonical)
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	require.Len(t, result.NoCandidates, 1)
	assert.Equal(t, "Target", result.NoCandidates[0].Best)
	assert.Equal(t, 89.9, result.NoCandidates[0].Score)
	assert.Equal(t, []string{"Other", "Target"}, result.UnmappedCanonical)

	loose, err := New(WithScorer(scorer), WithThreshold(89.9))
	require.NoError(t, err)
	assert.Equal(t, 89.9, loose.Threshold())
	result, err = loose.ReconcileNames(context.Background(), "GDP", "Country Name", []string{"Source"}, canonical)
	require.NoError(t, err)
	assert.Equal(t, "Target", result.Mappings["Source"].Canonical)
}

func TestReconcileTieBreak(t *testing.T) {
	flat := similarity.ScorerFunc(func(a, b string) float64 { return 95 })
	canonical := NewCanonicalSet("Charlie", "Alpha", "Bravo")

	r, err := New(WithScorer(flat))
	require.NoError(t, err)
	result, err := r.ReconcileNames(context.Background(), "GDP", "Country Name", []string{"x"}, canonical)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", result.Mappings["x"].Canonical)

	last, err := New(WithScorer(flat), WithTieBreak(func(candidate, best string) bool { return candidate > best }))
	require.NoError(t, err)
	result, err = last.ReconcileNames(context.Background(), "GDP", "Country Name", []string{"x"}, canonical)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", result.Mappings["x"].Canonical)
}

func TestReconcileIsDeterministic(t *testing.T) {
	canonical := NewCanonicalSet("Bahamas", "Germany", "South Korea", "United States", "Viet Nam")
	r, err := New()
	require.NoError(t, err)

	a, err := r.Reconcile(context.Background(), gdpTable("Vietnam", "Korea, South", "Bahamas, The", "Germany", "Euro area"), "Country Name", canonical)
	require.NoError(t, err)
	b, err := r.Reconcile(context.Background(), gdpTable("Euro area", "Germany", "Bahamas, The", "Korea, South", "Vietnam", "Germany"), "Country Name", canonical)
	require.NoError(t, err)

	assert.Equal(t, a.Mappings, b.Mappings)
	assert.Equal(t, a.UnmappedCanonical, b.UnmappedCanonical)
	assert.Equal(t, a.Unmatched(), b.Unmatched())
}

func TestReconcileTracksProvenance(t *testing.T) {
	tracker := provenance.NewTracker(true)
	r, err := New(WithProvenance(tracker))
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), gdpTable("Germany", "Korea, South", "Euro area"), "Country Name", NewCanonicalSet("Germany", "South Korea"))
	require.NoError(t, err)

	assert.Equal(t, len(result.Mappings), tracker.Len())
	m := tracker.Map()
	records := m["GDP:Country Name:Korea, South"]
	require.Len(t, records, 1)
	assert.Equal(t, "South Korea", records[0].Canonical)
	assert.Equal(t, 90.0, records[0].Threshold)
	assert.Equal(t, provenance.ReasonExact, m["GDP:Country Name:Germany"][0].Reason)
}

func TestReconcileErrors(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Reconcile(context.Background(), gdpTable("Germany"), "Country", NewCanonicalSet("Germany"))
	assert.True(t, errors.IsMissingColumn(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Reconcile(ctx, gdpTable("Germany"), "Country Name", NewCanonicalSet("Germany"))
	assert.True(t, errors.IsCanceled(err))

	result, err := r.ReconcileNames(context.Background(), "GDP", "Country Name", []string{"Germany"}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	require.Len(t, result.NoCandidates, 1)
	assert.Equal(t, `no candidate for "Germany"`, result.NoCandidates[0].Error())
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(WithThreshold(101))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithThreshold(-1))
	assert.Error(t, err)

	_, err = New(WithScorer(nil))
	assert.Error(t, err)

	_, err = New(WithTieBreak(nil))
	assert.Error(t, err)
}

func TestMappingTableInvert(t *testing.T) {
	m := MappingTable{
		"Korea, Rep.":  {Original: "Korea, Rep.", Canonical: "South Korea", Score: 92},
		"Korea, South": {Original: "Korea, South", Canonical: "South Korea", Score: 95},
		"Bahamas, The": {Original: "Bahamas, The", Canonical: "Bahamas", Score: 90},
		"Bahamas":      {Original: "Bahamas", Canonical: "Bahamas", Score: 100},
		"Aruba A":      {Original: "Aruba A", Canonical: "Aruba", Score: 91},
		"Aruba B":      {Original: "Aruba B", Canonical: "Aruba", Score: 91},
	}

	inv := m.Invert()
	require.Len(t, inv, 3)

	got, ok := inv.Lookup("South Korea")
	require.True(t, ok)
	assert.Equal(t, "Korea, South", got)

	got, _ = inv.Lookup("Bahamas")
	assert.Equal(t, "Bahamas", got)

	got, _ = inv.Lookup("Aruba")
	assert.Equal(t, "Aruba A", got)
}

func TestMappingTableHelpers(t *testing.T) {
	m := MappingTable{
		"b": {Original: "b", Canonical: "B", Score: 95},
		"a": {Original: "a", Canonical: "A", Score: 100},
	}
	assert.Equal(t, []string{"a", "b"}, m.Originals())
	assert.Equal(t, "a", m.Sorted()[0].Original)
	assert.Equal(t, []string{"C"}, m.Unmapped(NewCanonicalSet("A", "B", "C")))
}
