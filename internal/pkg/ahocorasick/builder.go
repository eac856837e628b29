package ahocorasick

import (
	"fmt"
	"unicode/utf8"
)

// Build compiles a Trie into an immutable Matcher.
//
// The trie already is the goto function; Build adds the two derived tables
// of the classic construction:
//  1. Failure links, computed breadth-first so a state's link is final
//     before any deeper state needs it.
//  2. Merged output sets: each state inherits the patterns ending at its
//     failure target, so the match loop reports suffix matches without
//     walking the fail chain.
//
// Build takes ownership of the trie's arena and seals the Trie. An empty
// Trie builds fine and yields a Matcher that matches nothing.
//
// Time and space are O(m) over the total length of all patterns.
func Build(t *Trie) (*Matcher, error) {
	if t.sealed {
		return nil, ErrTrieSealed
	}
	t.sealed = true

	m := &Matcher{
		nodes:        t.nodes,
		patterns:     t.patterns,
		patternLens:  make([]int, len(t.patterns)),
		patternRunes: make([]int, len(t.patterns)),
	}
	for i, p := range t.patterns {
		m.patternLens[i] = len(p)
		m.patternRunes[i] = utf8.RuneCountInString(p)
		if m.patternRunes[i] > m.maxRunes {
			m.maxRunes = m.patternRunes[i]
		}
	}

	computeFailureLinks(m)
	return m, nil
}

// Compile inserts words into a fresh Trie and builds the Matcher in one
// call.
func Compile(words []string) (*Matcher, error) {
	t := NewTrie()
	for _, w := range words {
		if err := t.Insert(w); err != nil {
			return nil, fmt.Errorf("insert %q: %w", w, err)
		}
	}
	return Build(t)
}

// computeFailureLinks fills in fail pointers and merges output sets with a
// breadth-first walk from the root.
func computeFailureLinks(m *Matcher) {
	queue := make([]int32, 0, len(m.nodes))

	// States at depth 1 fail to the root.
	for _, child := range m.nodes[rootState].next {
		m.nodes[child].fail = rootState
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for r, child := range m.nodes[cur].next {
			queue = append(queue, child)

			// Walk the parent's fail chain to the deepest state that can
			// consume r. A state must never fail to itself, hence the
			// child exclusion.
			fail := m.nodes[cur].fail
			for {
				if target, ok := m.nodes[fail].next[r]; ok && target != child {
					m.nodes[child].fail = target
					break
				}
				if fail == rootState {
					m.nodes[child].fail = rootState
					break
				}
				fail = m.nodes[fail].fail
			}

			// Patterns ending at the fail target are proper suffixes of
			// the path to child, so they end here too. The target sits in
			// an earlier BFS layer and is already fully merged, which
			// makes one append both transitive and duplicate free: an
			// inherited pattern is strictly shorter than the state's own.
			if failOut := m.nodes[m.nodes[child].fail].out; len(failOut) > 0 {
				m.nodes[child].out = append(m.nodes[child].out, failOut...)
			}
		}
	}
}
