package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled SQL LIKE style wildcard.
// '%' matches any run of characters and '_' exactly one character.
// Matching is case-insensitive and anchored to the whole candidate.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// Compile translates a wildcard into an anchored, case-insensitive matcher.
// Regex metacharacters in the wildcard are matched literally.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("exclusion pattern is empty")
	}

	// QuoteMeta leaves '%' and '_' untouched, so they can be substituted afterwards.
	expr := regexp.QuoteMeta(pattern)
	expr = strings.ReplaceAll(expr, "%", ".*")
	expr = strings.ReplaceAll(expr, "_", ".")

	re, err := regexp.Compile("(?is)^" + expr + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid exclusion pattern %q: %w", pattern, err)
	}
	return &Pattern{raw: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether candidate matches the whole pattern.
func (p *Pattern) Matches(candidate string) bool {
	return p.re.MatchString(candidate)
}

// String returns the wildcard the pattern was compiled from.
func (p *Pattern) String() string {
	return p.raw
}

// Set is an ordered list of exclusion patterns.
type Set []*Pattern

// CompileAll compiles every entry, failing on the first malformed one.
func CompileAll(patterns []string) (Set, error) {
	set := make(Set, 0, len(patterns))
	for i, raw := range patterns {
		p, err := Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("exclusion entry %d: %w", i, err)
		}
		set = append(set, p)
	}
	return set, nil
}

// IsExcluded reports whether any pattern matches fullName ("schema.table").
// An empty set excludes nothing.
func (s Set) IsExcluded(fullName string) bool {
	_, ok := s.Match(fullName)
	return ok
}

// Match returns the first pattern matching fullName.
func (s Set) Match(fullName string) (*Pattern, bool) {
	for _, p := range s {
		if p.Matches(fullName) {
			return p, true
		}
	}
	return nil, false
}

// Strings returns the raw wildcards of the set.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.raw
	}
	return out
}
