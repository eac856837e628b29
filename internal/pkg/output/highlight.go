package output

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tacenda/wordveil/internal/pkg/ahocorasick"
)

// matchStyle renders matched spans. Red and bold reads as "flagged" on
// both light and dark terminals.
var matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// Highlight returns text with every matched span styled for terminal
// display. Overlapping and adjacent spans are merged first so each byte
// is styled exactly once.
func Highlight(text string, matches []ahocorasick.Match) string {
	if len(matches) == 0 {
		return text
	}

	spans := mergeByteSpans(matches)

	var sb strings.Builder
	prev := 0
	for _, sp := range spans {
		sb.WriteString(text[prev:sp.start])
		sb.WriteString(matchStyle.Render(text[sp.start:sp.end]))
		prev = sp.end
	}
	sb.WriteString(text[prev:])
	return sb.String()
}

type byteSpan struct {
	start, end int
}

func mergeByteSpans(matches []ahocorasick.Match) []byteSpan {
	spans := make([]byteSpan, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, byteSpan{start: m.Start, end: m.End})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
