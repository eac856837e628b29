package stream

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
	"github.com/tacenda/wordveil/internal/pkg/output"
)

// scriptedReader serves one fixed chunk per Read call and can run a hook
// before serving a given chunk, so tests control exactly what happens
// between reads.
type scriptedReader struct {
	chunks  []string
	onChunk map[int]func()
	next    int
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if r.next >= len(r.chunks) {
		return 0, io.EOF
	}
	if fn, ok := r.onChunk[r.next]; ok {
		fn()
	}
	n := copy(p, r.chunks[r.next])
	r.next++
	return n, nil
}

func decodeEvents(t *testing.T, buf *bytes.Buffer) []output.StreamEvent {
	t.Helper()
	var events []output.StreamEvent
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var ev output.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		events = append(events, ev)
	}
	return events
}

func newLive(t *testing.T, words []string) *ahocorasick.LiveMatcher {
	t.Helper()
	live := ahocorasick.NewLiveMatcher()
	require.NoError(t, live.UpdateSync(words))
	return live
}

func TestFollow_EmitsEvents(t *testing.T) {
	live := newLive(t, []string{"spam", "色情"})
	var revision atomic.Value
	revision.Store("")

	var buf bytes.Buffer
	err := follow(strings.NewReader("some spam here 色情 content"), &buf, live, &revision, 4096)
	require.NoError(t, err)

	events := decodeEvents(t, &buf)
	require.Len(t, events, 2)
	assert.Equal(t, output.StreamEvent{Pattern: "spam", Start: 5, End: 9}, events[0])
	assert.Equal(t, output.StreamEvent{Pattern: "色情", Start: 15, End: 21}, events[1])
}

func TestFollow_WordSplitAcrossChunks(t *testing.T) {
	live := newLive(t, []string{"hers"})
	var revision atomic.Value
	revision.Store("")

	// Two-byte reads cut both the word and nothing else
	var buf bytes.Buffer
	err := follow(strings.NewReader("xhersx"), &buf, live, &revision, 2)
	require.NoError(t, err)

	events := decodeEvents(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, output.StreamEvent{Pattern: "hers", Start: 1, End: 5}, events[0])
}

func TestFollow_RuneSplitAcrossChunks(t *testing.T) {
	live := newLive(t, []string{"色情"})
	var revision atomic.Value
	revision.Store("")

	// One-byte reads cut every multi-byte character
	var buf bytes.Buffer
	err := follow(strings.NewReader("x色情x"), &buf, live, &revision, 1)
	require.NoError(t, err)

	events := decodeEvents(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, output.StreamEvent{Pattern: "色情", Start: 1, End: 7}, events[0])
}

func TestFollow_SwapIsolatesGenerations(t *testing.T) {
	live := newLive(t, []string{"spam"})
	var revision atomic.Value
	revision.Store("")

	// The update lands while the second chunk is being read, so the swap
	// happens before the third chunk. The second chunk's "scam" is seen
	// only by the old generation and must not match.
	reader := &scriptedReader{
		chunks: []string{"spam ", "scam ", "scam!"},
		onChunk: map[int]func(){
			1: func() {
				require.NoError(t, live.UpdateSync([]string{"scam"}))
				revision.Store("rev-2")
			},
		},
	}

	var buf bytes.Buffer
	err := follow(reader, &buf, live, &revision, 16)
	require.NoError(t, err)

	events := decodeEvents(t, &buf)
	require.Len(t, events, 2)
	assert.Equal(t, output.StreamEvent{Pattern: "spam", Start: 0, End: 4}, events[0])
	assert.Equal(t, output.StreamEvent{Pattern: "scam", Start: 10, End: 14, Revision: "rev-2"}, events[1])
}

func TestFollow_EmptyInput(t *testing.T) {
	live := newLive(t, []string{"spam"})
	var revision atomic.Value
	revision.Store("")

	var buf bytes.Buffer
	err := follow(strings.NewReader(""), &buf, live, &revision, 4096)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
