// Package ahocorasick implements the Aho-Corasick algorithm for
// multi-pattern matching over UTF-8 text. All patterns are matched
// simultaneously in a single pass over the input, in O(n + z) time where n
// is the input length and z is the number of matches, independent of the
// number of patterns.
//
// The package is built for sensitive-word detection and masking: words are
// inserted into a Trie, compiled into an immutable Matcher, and then
// searched, streamed or replaced concurrently without further
// synchronization. Matching is rune based, so multi-byte scripts match as
// characters while reported offsets stay in bytes.
package ahocorasick

import (
	"errors"
	"sort"
	"unicode/utf8"
)

// ErrNotBuilt is returned when searching with a Matcher that did not come
// from Build or Compile.
var ErrNotBuilt = errors.New("matcher not built")

// Match reports one pattern occurrence in the searched text. Start and End
// are byte offsets into the original input, Start inclusive and End
// exclusive, so text[Start:End] is the matched span.
type Match struct {
	Pattern string `json:"pattern"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Matcher is a compiled Aho-Corasick automaton. It is immutable after Build
// and safe for concurrent use by any number of goroutines.
type Matcher struct {
	nodes []node

	// patterns holds the distinct inserted words in insertion order.
	patterns []string

	// patternLens and patternRunes cache each pattern's length in bytes
	// and in runes, for offset arithmetic and mask repetition.
	patternLens  []int
	patternRunes []int

	// maxRunes is the rune count of the longest pattern.
	maxRunes int
}

// PatternCount returns the number of distinct patterns in the automaton.
func (m *Matcher) PatternCount() int {
	return len(m.patterns)
}

// NodeCount returns the number of automaton states, including the root.
func (m *Matcher) NodeCount() int {
	return len(m.nodes)
}

func (m *Matcher) ready() bool {
	return m != nil && len(m.nodes) > 0
}

// step advances the automaton by one rune, following failure links until a
// state that can consume r is found or the root is reached.
func (m *Matcher) step(s int32, r rune) int32 {
	for {
		if next, ok := m.nodes[s].next[r]; ok {
			return next
		}
		if s == rootState {
			return rootState
		}
		s = m.nodes[s].fail
	}
}

// Scan walks text once and calls visit for every match, in discovery
// order: non-decreasing end offset, longest pattern first among matches
// ending at the same offset. Scanning stops early when visit returns
// false.
//
// Invalid UTF-8 bytes are consumed one byte at a time as U+FFFD, mirroring
// Go's range-over-string behavior, so reported offsets always stay aligned
// with the original bytes.
func (m *Matcher) Scan(text string, visit func(Match) bool) error {
	if !m.ready() {
		return ErrNotBuilt
	}

	state := rootState
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		state = m.step(state, r)
		i += size

		for _, pi := range m.nodes[state].out {
			match := Match{
				Pattern: m.patterns[pi],
				Start:   i - m.patternLens[pi],
				End:     i,
			}
			if !visit(match) {
				return nil
			}
		}
	}
	return nil
}

// FindAll returns every occurrence of every pattern in text, including
// overlapping occurrences, in discovery order. A nil slice means no
// matches.
func (m *Matcher) FindAll(text string) ([]Match, error) {
	var matches []Match
	err := m.Scan(text, func(match Match) bool {
		matches = append(matches, match)
		return true
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Contains reports whether any pattern occurs in text. It stops at the
// first match instead of collecting all of them.
func (m *Matcher) Contains(text string) (bool, error) {
	found := false
	err := m.Scan(text, func(Match) bool {
		found = true
		return false
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// TiePolicy selects how a slice of matches is ordered when several
// patterns cover the same region of text.
type TiePolicy int

const (
	// TieDiscovery restores the order FindAll reports: end offset
	// ascending, longest pattern first among equal ends.
	TieDiscovery TiePolicy = iota

	// TieLongest orders by start offset, longest match first among equal
	// starts.
	TieLongest

	// TieLexical orders by start offset, then pattern text among equal
	// starts.
	TieLexical
)

// SortMatches reorders ms in place according to policy. FindAll already
// returns TieDiscovery order; the other policies are for callers that want
// a reading-order presentation.
func SortMatches(ms []Match, policy TiePolicy) {
	switch policy {
	case TieLongest:
		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].Start != ms[j].Start {
				return ms[i].Start < ms[j].Start
			}
			return ms[i].End > ms[j].End
		})
	case TieLexical:
		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].Start != ms[j].Start {
				return ms[i].Start < ms[j].Start
			}
			return ms[i].Pattern < ms[j].Pattern
		})
	default:
		// Two matches never share both offsets (equal span means equal
		// pattern, and patterns are distinct), so this order is total.
		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].End != ms[j].End {
				return ms[i].End < ms[j].End
			}
			return ms[i].Start < ms[j].Start
		})
	}
}
