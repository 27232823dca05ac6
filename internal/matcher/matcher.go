// Package matcher selects names, such as pipeline stage names, with glob or
// regular expression patterns.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto detects the pattern type from the pattern text.
	Auto
)

// String returns the pattern type name.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher reports whether a name matches a pattern.
type Matcher interface {
	Match(name string) bool
	Pattern() string
	Type() PatternType
}

type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern as the given type. Regex patterns are anchored so
// "align" does not match "align-airports"; use "align.*" for that.
func New(patternType PatternType, pattern string) (Matcher, error) {
	m := &matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		compiled, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return m, nil
}

func (m *matcher) Match(name string) bool {
	if m.patternType == Regex {
		return m.compiled.MatchString(name)
	}
	ok, _ := filepath.Match(m.pattern, name)
	return ok
}

func (m *matcher) Pattern() string   { return m.pattern }
func (m *matcher) Type() PatternType { return m.patternType }

// detectPatternType treats a pattern as a regex when it uses syntax
// that glob does not have.
func detectPatternType(pattern string) PatternType {
	for _, indicator := range []string{"^", "$", `\d`, `\w`, `\s`, "(?", "{", "}", "+", "|", "(", ")", ".*"} {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// Set matches a name when any of its patterns does.
type Set []Matcher

// NewSet compiles comma separated or repeated patterns with auto detection.
// Empty patterns are ignored.
func NewSet(patterns ...string) (Set, error) {
	var set Set
	for _, p := range patterns {
		for _, part := range strings.Split(p, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := New(Auto, part)
			if err != nil {
				return nil, err
			}
			set = append(set, m)
		}
	}
	return set, nil
}

// Match reports whether any pattern matches name. An empty set matches everything.
func (s Set) Match(name string) bool {
	if len(s) == 0 {
		return true
	}
	for _, m := range s {
		if m.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns the names that match, in their original order.
func (s Set) Filter(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s.Match(n) {
			out = append(out, n)
		}
	}
	return out
}
