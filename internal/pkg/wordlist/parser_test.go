package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "words.yaml")

		content := `revision: 3f1b7c9a-0000-0000-0000-000000000000
words:
  - word: 色情
    category: adult
    description: "blocked everywhere"
  - word: spam
    category: ads
    enabled: true
  - word: retired
    enabled: false
`
		err := os.WriteFile(wordFile, []byte(content), 0600)
		require.NoError(t, err)

		list, err := Load(wordFile)
		require.NoError(t, err)
		require.Len(t, list.Entries, 3)
		assert.Equal(t, wordFile, list.Path)
		assert.NotEmpty(t, list.Revision)

		assert.Equal(t, "色情", list.Entries[0].Word)
		assert.Equal(t, "adult", list.Entries[0].Category)
		assert.True(t, list.Entries[0].Enabled, "absent enabled defaults to true")

		assert.True(t, list.Entries[1].Enabled)
		assert.False(t, list.Entries[2].Enabled)

		assert.Equal(t, []string{"色情", "spam"}, list.Words())
		assert.True(t, list.Contains("retired"))
		assert.False(t, list.Contains("absent"))
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "words.yaml")

		err := os.WriteFile(wordFile, []byte("this is not valid yaml: [[["), 0600)
		require.NoError(t, err)

		_, err = Load(wordFile)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse wordlist YAML")
	})

	t.Run("drops invalid entries", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "words.yaml")

		content := `words:
  - word: valid
  - word: ""
  - word: " padded"
`
		err := os.WriteFile(wordFile, []byte(content), 0600)
		require.NoError(t, err)

		list, err := Load(wordFile)
		require.NoError(t, err)
		require.Len(t, list.Entries, 1)
		assert.Equal(t, "valid", list.Entries[0].Word)
	})
}

func TestLoadWithErrors(t *testing.T) {
	tempDir := t.TempDir()
	wordFile := filepath.Join(tempDir, "words.yaml")

	content := `words:
  - word: valid
  - word: ""
  - word: "bad\tword"
`
	err := os.WriteFile(wordFile, []byte(content), 0600)
	require.NoError(t, err)

	list, entryErrors, err := LoadWithErrors(wordFile)
	require.NoError(t, err)
	assert.Len(t, list.Entries, 1)
	require.Len(t, entryErrors, 2)

	var verr *ValidationError
	assert.ErrorAs(t, entryErrors[0], &verr)
}

func TestLoad_PlainText(t *testing.T) {
	tempDir := t.TempDir()
	wordFile := filepath.Join(tempDir, "words.txt")

	content := "# blocked words\nspam\n\n  赌博  \n# trailing comment\nscam\n"
	err := os.WriteFile(wordFile, []byte(content), 0600)
	require.NoError(t, err)

	list, err := Load(wordFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"spam", "赌博", "scam"}, list.Words())

	for _, e := range list.Entries {
		assert.True(t, e.Enabled)
	}
}

func TestLoad_PlainTextLineErrors(t *testing.T) {
	tempDir := t.TempDir()
	wordFile := filepath.Join(tempDir, "words.txt")

	content := "good\nbad\x01word\n"
	err := os.WriteFile(wordFile, []byte(content), 0600)
	require.NoError(t, err)

	list, entryErrors, err := LoadWithErrors(wordFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, list.Words())
	require.Len(t, entryErrors, 1)
	assert.Contains(t, entryErrors[0].Error(), "line 2")
}

func TestWrite(t *testing.T) {
	t.Run("write and read back", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "subdir", "words.yaml")

		list := &List{
			Path: wordFile,
			Entries: []Entry{
				{Word: "色情", Category: "adult", Description: "blocked", Enabled: true},
				{Word: "retired", Enabled: false},
			},
		}

		err := Write(wordFile, list)
		require.NoError(t, err)
		assert.NotEmpty(t, list.Revision)

		loaded, err := Load(wordFile)
		require.NoError(t, err)
		require.Len(t, loaded.Entries, 2)
		assert.Equal(t, "色情", loaded.Entries[0].Word)
		assert.Equal(t, "adult", loaded.Entries[0].Category)
		assert.Equal(t, "blocked", loaded.Entries[0].Description)
		assert.True(t, loaded.Entries[0].Enabled)
		assert.False(t, loaded.Entries[1].Enabled)
	})

	t.Run("atomic overwrite", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "words.yaml")

		first := &List{Entries: []Entry{{Word: "old", Enabled: true}}}
		require.NoError(t, Write(wordFile, first))

		second := &List{Entries: []Entry{{Word: "new", Enabled: true}}}
		require.NoError(t, Write(wordFile, second))
		assert.NotEqual(t, first.Revision, second.Revision)

		loaded, err := Load(wordFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"new"}, loaded.Words())

		// Verify no temp file left behind
		_, err = os.Stat(wordFile + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("plain text keeps only words", func(t *testing.T) {
		tempDir := t.TempDir()
		wordFile := filepath.Join(tempDir, "words.txt")

		list := &List{
			Entries: []Entry{
				{Word: "spam", Category: "ads", Enabled: true},
				{Word: "scam", Enabled: true},
			},
		}
		require.NoError(t, Write(wordFile, list))

		data, err := os.ReadFile(wordFile)
		require.NoError(t, err)
		assert.Equal(t, "spam\nscam\n", string(data))
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "words.yaml")
}
