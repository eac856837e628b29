package cmdutil

import (
	"fmt"
	"strings"

	"github.com/tacenda/wordveil/internal/pkg/logger"
	"github.com/tacenda/wordveil/internal/pkg/wordlist"
)

// LoadWordlists loads every given wordlist file and merges their enabled
// words in order. Invalid entries are logged and skipped; an unreadable
// file is an error.
func LoadWordlists(paths []string) ([]string, error) {
	var words []string
	for _, path := range paths {
		list, entryErrors, err := wordlist.LoadWithErrors(path)
		if err != nil {
			return nil, fmt.Errorf("wordlist %s: %w", path, err)
		}
		for _, entryErr := range entryErrors {
			logger.Warn("Skipping invalid wordlist entry", "path", path, "error", entryErr)
		}
		words = append(words, list.Words()...)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no enabled words in %s", strings.Join(paths, ", "))
	}
	return words, nil
}

// SkipPredicate turns an --ignore-chars flag value into the matcher's
// skip function. An empty value means no skipping and returns nil, which
// the matcher treats as plain search.
func SkipPredicate(chars string) func(rune) bool {
	if chars == "" {
		return nil
	}
	set := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		set[r] = struct{}{}
	}
	return func(r rune) bool {
		_, ok := set[r]
		return ok
	}
}
