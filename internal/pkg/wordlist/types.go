// Package wordlist loads, validates, and persists sensitive-word lists.
// Lists are YAML documents (a words: array with per-entry metadata) or
// plain text (one word per line, # comments); the format follows the file
// extension. The package is used by the CLI commands and by the stream
// watcher for hot reloads.
package wordlist

// Entry is one word of a wordlist with its metadata.
type Entry struct {
	Word        string `json:"word"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// List is a loaded wordlist. Revision identifies the generation: Load and
// Write both stamp a fresh one, so two lists with equal revisions hold the
// same content.
type List struct {
	Revision string  `json:"revision"`
	Path     string  `json:"path"`
	Entries  []Entry `json:"words"`
}

// Words returns the enabled words in file order.
func (l *List) Words() []string {
	words := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Enabled {
			words = append(words, e.Word)
		}
	}
	return words
}

// Contains reports whether word is already in the list, enabled or not.
func (l *List) Contains(word string) bool {
	for _, e := range l.Entries {
		if e.Word == word {
			return true
		}
	}
	return false
}

// listFile is the YAML document shape for persistence.
type listFile struct {
	Revision string       `yaml:"revision,omitempty"`
	Words    []*entryYAML `yaml:"words"`
}

// entryYAML is Entry's file shape. Enabled is a pointer so an absent key
// defaults to true.
type entryYAML struct {
	Word        string `yaml:"word"`
	Category    string `yaml:"category,omitempty"`
	Description string `yaml:"description,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
}

func (e *entryYAML) toEntry() Entry {
	return Entry{
		Word:        e.Word,
		Category:    e.Category,
		Description: e.Description,
		Enabled:     e.Enabled == nil || *e.Enabled,
	}
}

func fromEntry(e Entry) *entryYAML {
	y := &entryYAML{
		Word:        e.Word,
		Category:    e.Category,
		Description: e.Description,
	}
	if !e.Enabled {
		// Written only when it differs from the default.
		enabled := false
		y.Enabled = &enabled
	}
	return y
}
