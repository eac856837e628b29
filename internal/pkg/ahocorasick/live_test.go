package ahocorasick

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveMatcher_UpdateSync(t *testing.T) {
	lm := NewLiveMatcher()
	require.NoError(t, lm.UpdateSync([]string{"he", "she", "hers"}))

	assert.True(t, lm.HasAutomaton())
	assert.Equal(t, 3, lm.WordCount())
	assert.True(t, lm.Contains("ushers"))
	assert.False(t, lm.Contains("harmless"))

	want := []Match{
		{Pattern: "she", Start: 1, End: 4},
		{Pattern: "he", Start: 2, End: 4},
		{Pattern: "hers", Start: 2, End: 6},
	}
	assert.Equal(t, want, lm.FindAll("ushers"))
}

func TestLiveMatcher_Empty(t *testing.T) {
	lm := NewLiveMatcher()

	assert.False(t, lm.HasAutomaton())
	assert.Nil(t, lm.FindAll("anything"))
	assert.False(t, lm.Contains("anything"))
	assert.Equal(t, "anything", lm.Replace("anything", '*'))

	require.NoError(t, lm.UpdateSync(nil))
	assert.False(t, lm.HasAutomaton())
}

func TestLiveMatcher_FallbackMatchesAutomaton(t *testing.T) {
	words := []string{"he", "she", "hers", "色情"}
	texts := []string{
		"ushers",
		"这里有色情内容",
		"hehehe",
		"no hits here!",
		"shehers she",
	}

	compiled, err := Compile(words)
	require.NoError(t, err)

	// Words set without a build: searches take the linear path.
	fallback := NewLiveMatcher()
	fallback.setWords(words)
	require.False(t, fallback.HasAutomaton())

	for _, text := range texts {
		want, err := compiled.FindAll(text)
		require.NoError(t, err)
		assert.Equal(t, want, fallback.FindAll(text), "text %q", text)
		assert.Equal(t, len(want) > 0, fallback.Contains(text), "text %q", text)

		wantMasked, err := compiled.Replace(text, '*')
		require.NoError(t, err)
		assert.Equal(t, wantMasked, fallback.Replace(text, '*'), "text %q", text)
	}
}

func TestLiveMatcher_UpdateReplacesWords(t *testing.T) {
	lm := NewLiveMatcher()

	require.NoError(t, lm.UpdateSync([]string{"spam"}))
	assert.True(t, lm.Contains("spam offer"))

	require.NoError(t, lm.UpdateSync([]string{"scam"}))
	assert.False(t, lm.Contains("spam offer"))
	assert.True(t, lm.Contains("scam offer"))
}

func TestLiveMatcher_BuildFailureKeepsOldAutomaton(t *testing.T) {
	lm := NewLiveMatcher()
	require.NoError(t, lm.UpdateSync([]string{"he"}))

	err := lm.UpdateSync([]string{""})
	require.ErrorIs(t, err, ErrInvalidPattern)

	// The failed build must not tear down the serving automaton.
	assert.True(t, lm.HasAutomaton())
	assert.Equal(t, []Match{{Pattern: "he", Start: 0, End: 2}}, lm.FindAll("he"))
}

func TestLiveMatcher_AsyncUpdate(t *testing.T) {
	lm := NewLiveMatcher()
	lm.Update([]string{"spam", "scam"})

	require.Eventually(t, func() bool {
		return lm.HasAutomaton() && !lm.Building()
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, lm.Contains("a scam ad"))
}

func TestLiveMatcher_Snapshot(t *testing.T) {
	lm := NewLiveMatcher()
	assert.Nil(t, lm.Snapshot())

	require.NoError(t, lm.UpdateSync([]string{"spam"}))
	snap := lm.Snapshot()
	require.NotNil(t, snap)

	// A held snapshot keeps matching its own generation after a swap.
	require.NoError(t, lm.UpdateSync([]string{"scam"}))
	found, err := snap.Contains("spam")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, lm.Contains("spam"))
}

func TestLiveMatcher_ConcurrentAccess(t *testing.T) {
	lm := NewLiveMatcher()
	require.NoError(t, lm.UpdateSync([]string{"word0"}))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					lm.FindAll("some word0 and word3 text")
					lm.Contains("word3")
					lm.Replace("word0 word1", '*')
					lm.Stats()
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		lm.Update([]string{fmt.Sprintf("word%d", i%5), "spam"})
	}
	require.NoError(t, lm.UpdateSync([]string{"word3"}))

	close(stop)
	wg.Wait()

	assert.True(t, lm.Contains("word3"))
}

func TestLiveMatcher_Stats(t *testing.T) {
	lm := NewLiveMatcher()

	st := lm.Stats()
	assert.Equal(t, 0, st.WordCount)
	assert.False(t, st.HasAutomaton)
	assert.True(t, st.LastBuildTime.IsZero())

	require.NoError(t, lm.UpdateSync([]string{"he", "she"}))

	st = lm.Stats()
	assert.Equal(t, 2, st.WordCount)
	assert.True(t, st.HasAutomaton)
	assert.False(t, st.Building)
	assert.Greater(t, st.NodeCount, 1)
	assert.False(t, st.LastBuildTime.IsZero())
}
