package ahocorasick

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ReplacePolicy selects which match wins when occurrences overlap during
// replacement.
type ReplacePolicy int

const (
	// ReplaceFirstWins masks matches in discovery order: a match is
	// dropped when it overlaps a span that is already masked.
	ReplaceFirstWins ReplacePolicy = iota

	// ReplaceLongestWins prefers the longest match: candidates are
	// considered leftmost first, longest first among equal starts.
	ReplaceLongestWins
)

// Replace masks every pattern occurrence in text with the mask rune,
// repeated once per masked character rather than per byte, so a two-rune
// CJK word masked with '*' becomes "**". Overlapping occurrences resolve
// with ReplaceFirstWins. Text without matches is returned unchanged,
// without copying.
func (m *Matcher) Replace(text string, mask rune) (string, error) {
	return m.ReplaceWithPolicy(text, mask, ReplaceFirstWins)
}

// ReplaceWithPolicy is Replace with an explicit overlap policy.
func (m *Matcher) ReplaceWithPolicy(text string, mask rune, policy ReplacePolicy) (string, error) {
	matches, err := m.FindAll(text)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return text, nil
	}
	return MaskSpans(text, selectSpans(matches, policy), mask), nil
}

// selectSpans reduces overlapping matches to the disjoint subset the
// policy keeps. The input slice is not modified.
func selectSpans(matches []Match, policy ReplacePolicy) []Match {
	ordered := matches
	if policy == ReplaceLongestWins {
		ordered = make([]Match, len(matches))
		copy(ordered, matches)
		SortMatches(ordered, TieLongest)
	}

	kept := make([]Match, 0, len(ordered))
	lastEnd := 0
	for _, match := range ordered {
		if match.Start < lastEnd {
			continue
		}
		kept = append(kept, match)
		lastEnd = match.End
	}
	return kept
}

// MaskSpans rewrites text with each matched span replaced by the mask rune
// repeated once per character of the span. Overlapping spans are merged
// first, so every original character is masked at most once. Offsets must
// lie within text on rune boundaries, as produced by FindAll and
// FindAllSkip.
func MaskSpans(text string, matches []Match, mask rune) string {
	if len(matches) == 0 {
		return text
	}
	spans := mergeSpans(matches)

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		b.WriteString(text[last:sp.start])
		for n := utf8.RuneCountInString(text[sp.start:sp.end]); n > 0; n-- {
			b.WriteRune(mask)
		}
		last = sp.end
	}
	b.WriteString(text[last:])
	return b.String()
}

type span struct {
	start, end int
}

// mergeSpans folds match offsets into sorted disjoint spans.
func mergeSpans(matches []Match) []span {
	spans := make([]span, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, span{m.Start, m.End})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
