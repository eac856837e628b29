package ahocorasick

import "unicode/utf8"

// FindAllSkip is FindAll with a rune filter: runes for which skip returns
// true are invisible to the automaton, so "f-o-o" still matches the
// pattern "foo" when skip drops '-'. A reported span runs from the first
// to the last pattern rune in the original text, covering skipped runes
// between them but none before or after. A nil skip behaves exactly like
// FindAll.
func (m *Matcher) FindAllSkip(text string, skip func(rune) bool) ([]Match, error) {
	var matches []Match
	err := m.scanSkip(text, skip, func(match Match) bool {
		matches = append(matches, match)
		return true
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ContainsSkip reports whether any pattern occurs in text under the skip
// filter. It stops at the first match.
func (m *Matcher) ContainsSkip(text string, skip func(rune) bool) (bool, error) {
	found := false
	err := m.scanSkip(text, skip, func(Match) bool {
		found = true
		return false
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// scanSkip runs the match loop over the unskipped runes only. Byte-length
// arithmetic cannot recover a match's start once runes inside it were
// dropped, so the loop keeps a ring of the byte offsets of the last
// maxRunes unskipped runes and looks the start up by rune count instead.
func (m *Matcher) scanSkip(text string, skip func(rune) bool, visit func(Match) bool) error {
	if !m.ready() {
		return ErrNotBuilt
	}
	if skip == nil {
		return m.Scan(text, visit)
	}
	if m.maxRunes == 0 {
		// No patterns, nothing can match.
		return nil
	}

	starts := make([]int, m.maxRunes)
	seen := 0 // unskipped runes consumed so far
	state := rootState

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if skip(r) {
			i += size
			continue
		}

		starts[seen%m.maxRunes] = i
		seen++
		state = m.step(state, r)
		i += size

		for _, pi := range m.nodes[state].out {
			// The match's first rune is the (seen - runeCount)-th
			// unskipped rune, at most maxRunes back, so its byte offset
			// is still in the ring.
			match := Match{
				Pattern: m.patterns[pi],
				Start:   starts[(seen-m.patternRunes[pi])%m.maxRunes],
				End:     i,
			}
			if !visit(match) {
				return nil
			}
		}
	}
	return nil
}
