package types

import (
	"fmt"
	"strings"
)

// MatchPolicy decides where the matcher stops walking the trie from a given
// starting position. The zero value is not a valid policy.
type MatchPolicy int

const (
	// ShortestMatch stops at the first dictionary word along the path.
	ShortestMatch MatchPolicy = iota + 1
	// LongestMatch keeps walking and reports the last dictionary word reached.
	LongestMatch
)

func (p MatchPolicy) String() string {
	switch p {
	case ShortestMatch:
		return "shortest"
	case LongestMatch:
		return "longest"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// Valid reports whether p is one of the two defined policies.
func (p MatchPolicy) Valid() bool {
	return p == ShortestMatch || p == LongestMatch
}

// ParsePolicy accepts "shortest"/"min" and "longest"/"max" (case-insensitive).
func ParsePolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shortest", "min":
		return ShortestMatch, nil
	case "longest", "max":
		return LongestMatch, nil
	}
	return 0, fmt.Errorf("unknown match policy %q (want shortest|longest)", s)
}

// Span is one scanner hit: Word occupies code points [Start, End) of the
// scanned text.
type Span struct {
	Start int
	End   int
	Word  string
}

// Finding describes a dictionary word detected in a file at a line and
// 1-based code-point column. Commit is set for findings from git history.
type Finding struct {
	Path   string `json:"path"`
	Commit string `json:"commit,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
	Match  string `json:"match"`
	Policy string `json:"policy"`
}
