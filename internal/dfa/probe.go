package dfa

import "github.com/wordmask/wordmask/internal/types"

// Probe reports the length in code points of the dictionary word starting
// exactly at text[offset], or 0 if none does. ShortestMatch returns the first
// word reached along the trie path, LongestMatch the last one.
func (f *Filter) Probe(text []rune, offset int, policy types.MatchPolicy) int {
	if offset < 0 || offset >= len(text) {
		return 0
	}
	node := f.roots[text[offset]]
	if node == nil {
		return 0
	}
	length, confirmed := 1, 0
	for {
		if node.terminal {
			confirmed = length
			if policy == types.ShortestMatch {
				return confirmed
			}
		}
		next := offset + length
		if next >= len(text) || len(node.children) == 0 {
			return confirmed
		}
		child := node.children[text[next]]
		if child == nil {
			return confirmed
		}
		node = child
		length++
	}
}
