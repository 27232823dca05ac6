package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcess(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Côte d'Ivoire", "cote d ivoire"},
		{"  Korea,  South ", "korea south"},
		{"CURAÇAO", "curacao"},
		{"Congo (Kinshasa)", "congo kinshasa"},
		{"...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Process(tt.in))
		})
	}
}

func TestIdenticalStringsScore100(t *testing.T) {
	scorers := map[string]Scorer{
		"ratio":      Ratio,
		"token_sort": TokenSortRatio,
		"token_set":  TokenSetRatio,
		"partial":    PartialRatio,
		"weighted":   WeightedRatio,
	}
	for name, scorer := range scorers {
		t.Run(name, func(t *testing.T) {
			for _, s := range []string{"Germany", "United States", "Côte d'Ivoire", "", "..."} {
				assert.Equal(t, 100.0, scorer.Score(s, s), s)
			}
		})
	}
}

func TestDissimilarStringsScoreNearZero(t *testing.T) {
	assert.Equal(t, 0.0, WeightedRatio.Score("abc", "xyz"))
	assert.Less(t, WeightedRatio.Score("Germany", "Peru"), 50.0)
	assert.Equal(t, 0.0, WeightedRatio.Score("Germany", ""))
}

func TestWeightedRatio(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		atLeast float64
		below   float64
	}{
		{name: "case and accents", a: "Curaçao", b: "CURACAO", atLeast: 100, below: 100.1},
		{name: "word order", a: "Korea, South", b: "South Korea", atLeast: 95, below: 95.1},
		{name: "trailing article", a: "Bahamas, The", b: "Bahamas", atLeast: 89.9, below: 90.1},
		{name: "one edit", a: "Viet Nam", b: "Vietnam", atLeast: 87.4, below: 87.6},
		{name: "unrelated", a: "Euro area", b: "Eritrea", atLeast: 0, below: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedRatio.Score(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.atLeast)
			assert.Less(t, got, tt.below)
		})
	}
}

func TestScoresAreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Bahamas, The", "Bahamas"},
		{"Korea, Rep.", "South Korea"},
		{"Russian Federation", "Russia"},
	}
	for _, p := range pairs {
		assert.InDelta(t, WeightedRatio.Score(p[0], p[1]), WeightedRatio.Score(p[1], p[0]), 1e-9, p[0])
	}
}

func TestTokenSetSubsetScores100(t *testing.T) {
	assert.Equal(t, 100.0, TokenSetRatio.Score("Micronesia, Fed. Sts.", "Micronesia"))
	assert.Equal(t, 100.0, PartialRatio.Score("Bahamas", "The Bahamas"))
}

func TestScorerFunc(t *testing.T) {
	constant := ScorerFunc(func(a, b string) float64 { return 42 })
	assert.Equal(t, 42.0, constant.Score("x", "y"))
}
