// Package similarity scores how alike two names are on a 0-100 scale.
//
// Identical strings always score 100 and completely dissimilar strings score
// near 0. Every scorer first folds case, strips diacritics and collapses
// punctuation to single spaces, so "Côte d'Ivoire" and "Cote D'Ivoire" compare
// as equal. Distances are Levenshtein edit distances over runes.
package similarity

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Scorer computes a similarity score between 0 and 100.
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc allows functions to implement Scorer.
type ScorerFunc func(a, b string) float64

// Score implements the Scorer interface.
func (f ScorerFunc) Score(a, b string) float64 {
	return f(a, b)
}

// Built-in scorers.
var (
	// Ratio is the normalized edit-distance similarity of the processed strings.
	Ratio Scorer = ScorerFunc(func(a, b string) float64 { return score(a, b, ratio) })

	// TokenSortRatio compares the strings after sorting their words.
	TokenSortRatio Scorer = ScorerFunc(func(a, b string) float64 { return score(a, b, tokenSortRatio) })

	// TokenSetRatio compares shared and distinct words, scoring 100 when one
	// word set contains the other.
	TokenSetRatio Scorer = ScorerFunc(func(a, b string) float64 { return score(a, b, tokenSetRatio) })

	// PartialRatio scores the best alignment of the shorter string inside the longer.
	PartialRatio Scorer = ScorerFunc(func(a, b string) float64 { return score(a, b, partialRatio) })

	// WeightedRatio combines the scorers above depending on the length ratio of
	// the inputs. It is the default scorer for country reconciliation.
	WeightedRatio Scorer = ScorerFunc(func(a, b string) float64 { return score(a, b, weightedRatio) })
)

const (
	// unbaseScale discounts token based scores against a plain ratio
	unbaseScale = 0.95
	// partialScale discounts partial scores for moderately different lengths
	partialScale = 0.9
	// longPartialScale discounts partial scores for very different lengths
	longPartialScale = 0.6
)

// Process folds case, strips diacritics and reduces every run of
// non-alphanumeric characters to a single space.
func Process(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	folded := cases.Fold().String(stripped)

	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

// score applies the identity rule, then fn over the processed inputs.
func score(a, b string, fn func(a, b string) float64) float64 {
	if a == b {
		return 100
	}
	pa, pb := Process(a), Process(b)
	if pa == "" || pb == "" {
		return 0
	}
	return fn(pa, pb)
}

// ratio is 100 * (1 - distance / longest length).
func ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

func tokens(s string) []string {
	fields := strings.Fields(s)
	sort.Strings(fields)
	return fields
}

func tokenSortRatio(a, b string) float64 {
	return ratio(strings.Join(tokens(a), " "), strings.Join(tokens(b), " "))
}

// splitTokenSets returns the sorted shared words and the words unique to each side.
func splitTokenSets(a, b string) (sect, onlyA, onlyB []string) {
	setA := make(map[string]bool)
	for _, t := range strings.Fields(a) {
		setA[t] = true
	}
	setB := make(map[string]bool)
	for _, t := range strings.Fields(b) {
		setB[t] = true
	}
	for t := range setA {
		if setB[t] {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return sect, onlyA, onlyB
}

func tokenSetRatio(a, b string) float64 {
	sect, onlyA, onlyB := splitTokenSets(a, b)
	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	s := strings.Join(sect, " ")
	combinedA := strings.TrimSpace(s + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(s + " " + strings.Join(onlyB, " "))

	best := ratio(combinedA, combinedB)
	if s != "" {
		best = max(best, ratio(s, combinedA), ratio(s, combinedB))
	}
	return best
}

// partialRatio slides the shorter string over the longer one.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	shortStr := string(short)
	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := ratio(shortStr, string(long[start:start+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func partialTokenRatio(a, b string) float64 {
	sect, onlyA, onlyB := splitTokenSets(a, b)
	if len(sect) > 0 {
		return 100
	}
	return max(
		partialRatio(strings.Join(tokens(a), " "), strings.Join(tokens(b), " ")),
		partialRatio(strings.Join(onlyA, " "), strings.Join(onlyB, " ")),
	)
}

func weightedRatio(a, b string) float64 {
	la, lb := float64(len([]rune(a))), float64(len([]rune(b)))
	lenRatio := max(la, lb) / min(la, lb)

	best := ratio(a, b)
	if lenRatio < 1.5 {
		tokenScore := max(tokenSortRatio(a, b), tokenSetRatio(a, b))
		return max(best, tokenScore*unbaseScale)
	}

	scale := partialScale
	if lenRatio >= 8 {
		scale = longPartialScale
	}
	best = max(best, partialRatio(a, b)*scale)
	return max(best, partialTokenRatio(a, b)*unbaseScale*scale)
}
