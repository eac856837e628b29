package wordlist

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ValidationError describes a rejected wordlist entry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks an entry against the matcher's pattern rules plus file
// hygiene. Words must be non-empty valid UTF-8 without surrounding
// whitespace or control characters; surrounding whitespace is rejected
// rather than trimmed because the stored word is matched byte for byte.
func Validate(e *Entry) error {
	if e.Word == "" {
		return &ValidationError{Field: "word", Message: "word is required"}
	}
	if !utf8.ValidString(e.Word) {
		return &ValidationError{Field: "word", Message: "word must be valid UTF-8"}
	}
	first, _ := utf8.DecodeRuneInString(e.Word)
	last, _ := utf8.DecodeLastRuneInString(e.Word)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return &ValidationError{Field: "word", Message: "word has leading or trailing whitespace"}
	}
	for _, r := range e.Word {
		if unicode.IsControl(r) {
			return &ValidationError{Field: "word", Message: "word contains control characters"}
		}
	}
	return nil
}
