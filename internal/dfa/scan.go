package dfa

import (
	"sort"

	"github.com/wordmask/wordmask/internal/types"
)

// Scan walks text left to right and returns the non-overlapping spans of
// dictionary words found. After a hit the cursor jumps past the whole span,
// so a word starting inside an earlier hit is not reported.
func (f *Filter) Scan(text string, policy types.MatchPolicy) []types.Span {
	if len(f.roots) == 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	var out []types.Span
	for i := 0; i < len(runes); {
		n := f.Probe(runes, i, policy)
		if n == 0 {
			i++
			continue
		}
		out = append(out, types.Span{Start: i, End: i + n, Word: string(runes[i : i+n])})
		i += n
	}
	return out
}

// Find returns the distinct dictionary words found in text, sorted.
func (f *Filter) Find(text string, policy types.MatchPolicy) []string {
	spans := f.Scan(text, policy)
	if len(spans) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(spans))
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		if _, ok := seen[s.Word]; ok {
			continue
		}
		seen[s.Word] = struct{}{}
		out = append(out, s.Word)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether any dictionary word occurs in text.
func (f *Filter) Contains(text string, policy types.MatchPolicy) bool {
	runes := []rune(text)
	for i := range runes {
		if f.Probe(runes, i, policy) > 0 {
			return true
		}
	}
	return false
}
