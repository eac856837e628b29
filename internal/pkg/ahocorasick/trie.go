package ahocorasick

import (
	"errors"
	"unicode/utf8"
)

// rootState is the arena index of the root. Index 0 is always the root, so
// a zero fail link means "resume at the root".
const rootState int32 = 0

var (
	// ErrInvalidPattern is returned by Insert for patterns the automaton
	// cannot represent: the empty string and byte sequences that are not
	// valid UTF-8.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrTrieSealed is returned when a Trie is used after Build consumed
	// it.
	ErrTrieSealed = errors.New("trie already built")
)

// node is one automaton state. States live in a flat arena and refer to
// each other by index rather than pointer; the arena is shared between the
// Trie that grows it and the Matcher that is compiled from it.
type node struct {
	// next maps the next rune of a pattern to the child state. A map
	// keeps memory proportional to the runes actually used, which matters
	// for CJK-heavy wordlists where a dense table per state is hopeless.
	next map[rune]int32

	// fail is the state to resume from when no child consumes the input
	// rune: the longest proper suffix of the path to this state that is
	// also a prefix of some pattern. Zero until Build runs.
	fail int32

	// out lists indices of patterns ending at this state. After Build it
	// also carries the patterns inherited through the fail chain, so the
	// match loop never walks that chain itself.
	out []int32
}

func newNode() node {
	return node{next: make(map[rune]int32)}
}

// Trie is the mutable pattern set an automaton is compiled from. Insert
// every word first, then hand the Trie to Build. Build seals the Trie;
// a sealed Trie rejects further inserts because the failure pass rewrites
// the shared arena in place.
type Trie struct {
	nodes    []node
	patterns []string
	index    map[string]int32
	sealed   bool
}

// NewTrie returns an empty Trie holding only the root state.
func NewTrie() *Trie {
	return &Trie{
		nodes: []node{newNode()},
		index: make(map[string]int32),
	}
}

// Insert adds word to the pattern set, extending the trie rune by rune.
// Words sharing a prefix share that path. Inserting the same word twice is
// a no-op. The empty string is rejected with ErrInvalidPattern, as is a
// word that is not valid UTF-8: both have no usable rune path.
func (t *Trie) Insert(word string) error {
	if t.sealed {
		return ErrTrieSealed
	}
	if word == "" || !utf8.ValidString(word) {
		return ErrInvalidPattern
	}
	if _, ok := t.index[word]; ok {
		return nil
	}

	cur := rootState
	for _, r := range word {
		next, ok := t.nodes[cur].next[r]
		if !ok {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, newNode())
			t.nodes[cur].next[r] = next
		}
		cur = next
	}

	idx := int32(len(t.patterns))
	t.patterns = append(t.patterns, word)
	t.index[word] = idx
	t.nodes[cur].out = append(t.nodes[cur].out, idx)
	return nil
}

// PatternCount returns the number of distinct words inserted so far.
func (t *Trie) PatternCount() int {
	return len(t.patterns)
}

// NodeCount returns the number of states in the trie, including the root.
func (t *Trie) NodeCount() int {
	return len(t.nodes)
}
