package dfa

import (
	"strings"
	"unicode/utf8"

	"github.com/wordmask/wordmask/internal/types"
)

// Replace masks every occurrence of every word Find reports, anywhere in
// text, with mask repeated to the word's length in code points. Replacement
// is by content: a word recurring outside the spans Scan visited is masked
// too.
func (f *Filter) Replace(text string, policy types.MatchPolicy, mask rune) string {
	words := f.Find(text, policy)
	if len(words) == 0 {
		return text
	}
	m := string(mask)
	for _, w := range words {
		text = strings.ReplaceAll(text, w, strings.Repeat(m, utf8.RuneCountInString(w)))
	}
	return text
}
