package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	// fileLock protects atomic file writes
	fileLock sync.Mutex
)

// Load reads a wordlist file. Entries failing validation are dropped; use
// LoadWithErrors to see them. A missing file is an error: wordlist paths
// come from the user, and scanning against a silently empty list hides
// typos.
func Load(path string) (*List, error) {
	list, _, err := LoadWithErrors(path)
	return list, err
}

// LoadWithErrors reads a wordlist file, returning the valid entries plus
// one error per rejected entry. YAML is parsed for .yaml/.yml paths, plain
// text otherwise.
func LoadWithErrors(path string) (*List, []error, error) {
	// #nosec G304 -- Path is from configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read wordlist: %w", err)
	}

	var entries []Entry
	var entryErrors []error
	if isYAMLPath(path) {
		entries, entryErrors, err = parseYAML(data)
		if err != nil {
			return nil, nil, err
		}
	} else {
		entries, entryErrors = parseText(data)
	}

	return &List{
		Revision: uuid.NewString(),
		Path:     path,
		Entries:  entries,
	}, entryErrors, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func parseYAML(data []byte) ([]Entry, []error, error) {
	var doc listFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse wordlist YAML: %w", err)
	}

	var entries []Entry
	var entryErrors []error
	for _, y := range doc.Words {
		entry := y.toEntry()
		if err := Validate(&entry); err != nil {
			entryErrors = append(entryErrors, fmt.Errorf("word %q: %w", y.Word, err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, entryErrors, nil
}

func parseText(data []byte) ([]Entry, []error) {
	var entries []Entry
	var entryErrors []error
	for i, line := range strings.Split(string(data), "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		entry := Entry{Word: word, Enabled: true}
		if err := Validate(&entry); err != nil {
			entryErrors = append(entryErrors, fmt.Errorf("line %d: %w", i+1, err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, entryErrors
}

// Write persists the list atomically: marshal, write to a temp file, then
// rename over path. A fresh revision is stamped on the list and stored
// with it. YAML paths keep full entry metadata; any other extension gets
// plain text, which keeps only the words.
func Write(path string, list *List) error {
	fileLock.Lock()
	defer fileLock.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create wordlist directory: %w", err)
	}

	list.Revision = uuid.NewString()

	var data []byte
	if isYAMLPath(path) {
		doc := listFile{
			Revision: list.Revision,
			Words:    make([]*entryYAML, 0, len(list.Entries)),
		}
		for _, e := range list.Entries {
			doc.Words = append(doc.Words, fromEntry(e))
		}
		var err error
		data, err = yaml.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("failed to marshal wordlist: %w", err)
		}
	} else {
		var sb strings.Builder
		for _, e := range list.Entries {
			sb.WriteString(e.Word)
			sb.WriteByte('\n')
		}
		data = []byte(sb.String())
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp wordlist file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile) // Cleanup temp file on error
		return fmt.Errorf("failed to rename temp wordlist file: %w", err)
	}

	return nil
}

// DefaultPath returns the default wordlist location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "words.yaml" // Fallback to local directory
	}
	return filepath.Join(homeDir, ".config", "wordveil", "words.yaml")
}
