// Package output provides consistent CLI output formatting: TTY-aware
// JSON documents, JSON-lines streaming, and terminal highlighting of
// matched spans.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// MarshalJSON marshals v to JSON with formatting based on TTY detection.
// When stdout is a TTY, output is pretty-printed with 2-space indentation.
// When piped or redirected, output is compact single-line JSON.
func MarshalJSON(v any) ([]byte, error) {
	return MarshalJSONPretty(v, IsTTY())
}

// MarshalJSONPretty marshals v to JSON with explicit formatting control.
// When pretty is true, output is indented with 2 spaces.
// When pretty is false, output is compact single-line JSON.
func MarshalJSONPretty(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// PrintJSON writes v to w as one JSON document with a trailing newline,
// pretty-printed when stdout is a TTY.
func PrintJSON(w io.Writer, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Report is the scan result for one input.
type Report struct {
	Source  string              `json:"source"`
	Count   int                 `json:"count"`
	Matches []ahocorasick.Match `json:"matches"`
}

// NewReport builds a Report. A nil match slice becomes empty so the JSON
// field reads [] rather than null.
func NewReport(source string, matches []ahocorasick.Match) Report {
	if matches == nil {
		matches = []ahocorasick.Match{}
	}
	return Report{
		Source:  source,
		Count:   len(matches),
		Matches: matches,
	}
}

// StreamEvent is one JSON line of stream-mode output. Offsets address the
// stream from its start. Revision names the wordlist generation that
// produced the match, when known.
type StreamEvent struct {
	Pattern  string `json:"pattern"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Revision string `json:"revision,omitempty"`
}

// LineWriter emits compact JSON documents one per line, the stream-mode
// output format.
type LineWriter struct {
	enc *json.Encoder
}

// NewLineWriter returns a LineWriter on w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{enc: json.NewEncoder(w)}
}

// Write emits one event as a line.
func (lw *LineWriter) Write(ev StreamEvent) error {
	return lw.enc.Encode(ev)
}
