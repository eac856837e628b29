package ahocorasick

import (
	"errors"
	"unicode/utf8"
)

// Scanner matches a stream fed in arbitrary chunks. It carries the
// automaton state, the absolute byte position, and the bytes of a rune
// split across a chunk boundary, so reported Match offsets address the
// stream as if it were one contiguous input. Matches spanning chunk
// boundaries are found like any other.
//
// A Scanner is stateful and not safe for concurrent use; use one Scanner
// per stream.
type Scanner struct {
	m    *Matcher
	emit func(Match) bool

	state   int32
	pos     int
	pend    []byte // prefix of a rune awaiting its continuation bytes
	stopped bool
}

// NewScanner returns a Scanner feeding every match to emit. Scanning stops
// for good once emit returns false. ErrNotBuilt is returned when m did not
// come from Build.
func NewScanner(m *Matcher, emit func(Match) bool) (*Scanner, error) {
	if !m.ready() {
		return nil, ErrNotBuilt
	}
	if emit == nil {
		return nil, errors.New("emit func is required")
	}
	return &Scanner{
		m:    m,
		emit: emit,
		pend: make([]byte, 0, utf8.UTFMax),
	}, nil
}

// Write feeds the next chunk of the stream. It always consumes the whole
// chunk and never fails; after emit has stopped the scanner, further
// chunks are discarded. Write does not retain p.
func (s *Scanner) Write(p []byte) (int, error) {
	if s.stopped {
		return len(p), nil
	}

	data := p

	// Finish a rune left incomplete by the previous chunk. Bytes move over
	// one at a time because the pending prefix may turn out invalid, in
	// which case only its first byte is consumed as U+FFFD and the rest
	// must be reconsidered.
	for len(s.pend) > 0 {
		if !utf8.FullRune(s.pend) {
			if len(data) == 0 {
				return len(p), nil
			}
			s.pend = append(s.pend, data[0])
			data = data[1:]
			continue
		}
		r, size := utf8.DecodeRune(s.pend)
		if !s.feed(r, size) {
			return len(p), nil
		}
		s.pend = append(s.pend[:0], s.pend[size:]...)
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(data[i:]) {
			// Trailing bytes of an unfinished rune; hold them for the
			// next chunk. At most utf8.UTFMax-1 bytes remain here.
			s.pend = append(s.pend, data[i:]...)
			break
		}
		if !s.feed(r, size) {
			break
		}
		i += size
	}
	return len(p), nil
}

// feed advances the automaton by one rune of the given encoded width and
// emits the matches ending at it.
func (s *Scanner) feed(r rune, size int) bool {
	s.state = s.m.step(s.state, r)
	s.pos += size

	for _, pi := range s.m.nodes[s.state].out {
		match := Match{
			Pattern: s.m.patterns[pi],
			Start:   s.pos - s.m.patternLens[pi],
			End:     s.pos,
		}
		if !s.emit(match) {
			s.stopped = true
			return false
		}
	}
	return true
}

// Flush drains a partial rune dangling at end of stream. The held bytes
// can no longer be completed, so each one is consumed as a width-1 U+FFFD,
// exactly as ranging over the full text would have decoded them. Call it
// once the stream is exhausted.
func (s *Scanner) Flush() {
	n := len(s.pend)
	s.pend = s.pend[:0]
	for ; n > 0 && !s.stopped; n-- {
		if !s.feed(utf8.RuneError, 1) {
			return
		}
	}
}

// Reset returns the scanner to its initial state for a new stream, keeping
// the Matcher and the emit callback.
func (s *Scanner) Reset() {
	s.state = rootState
	s.pos = 0
	s.pend = s.pend[:0]
	s.stopped = false
}

// Stopped reports whether emit halted the scanner.
func (s *Scanner) Stopped() bool {
	return s.stopped
}
