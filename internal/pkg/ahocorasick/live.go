package ahocorasick

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tacenda/wordveil/internal/pkg/logger"
)

// LiveMatcher is a swappable Matcher for wordlists that change at runtime.
// Reads are lock free: searches load the current automaton from an atomic
// pointer while rebuilds run in the background, so a wordlist update never
// blocks or tears an in-flight search.
//
// Key properties:
//   - Lock-free reads via atomic.Pointer
//   - Background rebuilds; the previous automaton serves until the swap
//   - Linear-scan fallback before the first successful build, returning
//     matches in the same order the automaton would
type LiveMatcher struct {
	// automaton is the current compiled matcher. nil means no build has
	// succeeded yet and searches use the linear fallback.
	automaton atomic.Pointer[Matcher]

	// words is the current wordlist, kept for the fallback and rebuilds.
	words   []string
	wordsMu sync.RWMutex

	// buildMu serializes rebuilds.
	buildMu  sync.Mutex
	building atomic.Bool

	lastBuildTime     atomic.Value // time.Time
	lastBuildDuration atomic.Value // time.Duration
}

// NewLiveMatcher returns a LiveMatcher with no words.
func NewLiveMatcher() *LiveMatcher {
	lm := &LiveMatcher{}
	lm.lastBuildTime.Store(time.Time{})
	lm.lastBuildDuration.Store(time.Duration(0))
	return lm
}

// Update replaces the wordlist and rebuilds the automaton in the
// background. Safe to call concurrently with searches; until the swap
// completes, searches keep using the previous automaton.
func (lm *LiveMatcher) Update(words []string) {
	lm.setWords(words)
	go func() {
		_ = lm.rebuild() // rebuild logs its own failures
	}()
}

// UpdateSync replaces the wordlist and waits for the rebuild. Use it when
// the new words must be active on return.
func (lm *LiveMatcher) UpdateSync(words []string) error {
	lm.setWords(words)
	return lm.rebuild()
}

func (lm *LiveMatcher) setWords(words []string) {
	cp := make([]string, len(words))
	copy(cp, words)

	lm.wordsMu.Lock()
	lm.words = cp
	lm.wordsMu.Unlock()
}

// rebuild compiles the current words and swaps the automaton in
// atomically. On build failure the previous automaton stays in place.
func (lm *LiveMatcher) rebuild() error {
	lm.buildMu.Lock()
	defer lm.buildMu.Unlock()

	lm.building.Store(true)
	defer lm.building.Store(false)

	lm.wordsMu.RLock()
	words := make([]string, len(lm.words))
	copy(words, lm.words)
	lm.wordsMu.RUnlock()

	if len(words) == 0 {
		lm.automaton.Store(nil)
		logger.Debug("Cleared automaton (no words)")
		return nil
	}

	start := time.Now()
	m, err := Compile(words)
	if err != nil {
		logger.Error("Failed to build automaton", "error", err, "word_count", len(words))
		return err
	}
	buildDuration := time.Since(start)

	lm.automaton.Store(m)
	lm.lastBuildTime.Store(time.Now())
	lm.lastBuildDuration.Store(buildDuration)

	logger.Info("Automaton rebuilt",
		"word_count", len(words),
		"build_duration", buildDuration,
		"node_count", m.NodeCount())

	return nil
}

// Snapshot returns the current automaton, or nil when no build has
// succeeded yet. Callers that must keep matching against one wordlist
// generation, such as a stream scanner, should hold the snapshot instead
// of re-loading per search.
func (lm *LiveMatcher) Snapshot() *Matcher {
	return lm.automaton.Load()
}

// FindAll returns every pattern occurrence in text, in discovery order.
// Lock free and safe for concurrent use.
func (lm *LiveMatcher) FindAll(text string) []Match {
	if m := lm.automaton.Load(); m != nil {
		matches, _ := m.FindAll(text)
		return matches
	}
	return lm.linearFindAll(text)
}

// Contains reports whether any word occurs in text.
func (lm *LiveMatcher) Contains(text string) bool {
	if m := lm.automaton.Load(); m != nil {
		found, _ := m.Contains(text)
		return found
	}

	lm.wordsMu.RLock()
	defer lm.wordsMu.RUnlock()
	for _, w := range lm.words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Replace masks every word occurrence in text with mask, first match
// winning on overlaps.
func (lm *LiveMatcher) Replace(text string, mask rune) string {
	if m := lm.automaton.Load(); m != nil {
		replaced, _ := m.Replace(text, mask)
		return replaced
	}

	matches := lm.linearFindAll(text)
	if len(matches) == 0 {
		return text
	}
	return MaskSpans(text, selectSpans(matches, ReplaceFirstWins), mask)
}

// linearFindAll is the pre-build fallback: every occurrence of every
// distinct word by repeated substring search, sorted into the automaton's
// discovery order.
func (lm *LiveMatcher) linearFindAll(text string) []Match {
	lm.wordsMu.RLock()
	words := lm.words
	lm.wordsMu.RUnlock()

	var matches []Match
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}

		for off := 0; ; {
			rel := strings.Index(text[off:], w)
			if rel < 0 {
				break
			}
			start := off + rel
			matches = append(matches, Match{Pattern: w, Start: start, End: start + len(w)})
			off = start + 1
		}
	}
	SortMatches(matches, TieDiscovery)
	return matches
}

// WordCount returns the number of words currently loaded, counting
// duplicates the caller may have passed.
func (lm *LiveMatcher) WordCount() int {
	lm.wordsMu.RLock()
	defer lm.wordsMu.RUnlock()
	return len(lm.words)
}

// HasAutomaton reports whether a compiled automaton is serving searches.
func (lm *LiveMatcher) HasAutomaton() bool {
	return lm.automaton.Load() != nil
}

// Building reports whether a rebuild is in progress.
func (lm *LiveMatcher) Building() bool {
	return lm.building.Load()
}

// LiveStats describes the current state of a LiveMatcher.
type LiveStats struct {
	WordCount         int
	HasAutomaton      bool
	Building          bool
	NodeCount         int
	LastBuildTime     time.Time
	LastBuildDuration time.Duration
}

// Stats returns a snapshot of the matcher's state.
func (lm *LiveMatcher) Stats() LiveStats {
	m := lm.automaton.Load()

	st := LiveStats{
		WordCount:    lm.WordCount(),
		HasAutomaton: m != nil,
		Building:     lm.building.Load(),
	}
	if m != nil {
		st.NodeCount = m.NodeCount()
	}
	if t, ok := lm.lastBuildTime.Load().(time.Time); ok {
		st.LastBuildTime = t
	}
	if d, ok := lm.lastBuildDuration.Load().(time.Duration); ok {
		st.LastBuildDuration = d
	}
	return st
}
