package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wordmask/wordmask/internal/types"
)

var matchStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true).
	Underline(true)

// Highlight returns text with every span emphasised. Without colour the
// spans are wrapped in brackets instead. Spans must be sorted and must not
// overlap, as produced by a single scan.
func Highlight(text string, spans []types.Span, noColor bool) string {
	if len(spans) == 0 {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		if s.Start < prev || s.End > len(runes) {
			continue
		}
		b.WriteString(string(runes[prev:s.Start]))
		word := string(runes[s.Start:s.End])
		if noColor {
			b.WriteString("[" + word + "]")
		} else {
			b.WriteString(matchStyle.Render(word))
		}
		prev = s.End
	}
	b.WriteString(string(runes[prev:]))
	return b.String()
}
