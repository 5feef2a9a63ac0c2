package core

import (
	"fmt"

	"github.com/wordmask/wordmask/internal/dfa"
	"github.com/wordmask/wordmask/internal/dictionary"
	"github.com/wordmask/wordmask/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Filter      = dfa.Filter
	MatchPolicy = types.MatchPolicy
	Span        = types.Span
	Finding     = types.Finding
)

const (
	ShortestMatch = types.ShortestMatch
	LongestMatch  = types.LongestMatch
)

// ErrDictionaryLoad is wrapped by every dictionary read failure.
var ErrDictionaryLoad = dictionary.ErrDictionaryLoad

var defaultFilter = dfa.NewLazy(func() ([]string, error) {
	return dictionary.Load(dictionary.Path(""), dictionary.Options{})
})

// New compiles a Filter from an in-memory word list.
func New(words []string) *Filter { return dfa.Compile(words) }

// Load compiles a Filter from a newline-delimited dictionary file. encoding
// may be empty (UTF-8), a charset name such as "gbk", or "auto".
func Load(path, encoding string) (*Filter, error) {
	words, err := dictionary.Load(path, dictionary.Options{Encoding: encoding})
	if err != nil {
		return nil, err
	}
	return dfa.Compile(words), nil
}

// Default returns the process-wide Filter, building it on first use.
func Default() (*Filter, error) { return defaultFilter.Get() }

func mustDefault() *Filter {
	f, err := defaultFilter.Get()
	if err != nil {
		panic(err)
	}
	return f
}

func mustPolicy(p MatchPolicy) {
	if !p.Valid() {
		panic(fmt.Sprintf("core: invalid match policy %v", p))
	}
}

// FindSensitiveWords returns the distinct dictionary words found in text,
// sorted.
func FindSensitiveWords(text string, policy MatchPolicy) []string {
	mustPolicy(policy)
	return mustDefault().Find(text, policy)
}

// ReplaceSensitiveWords returns text with every occurrence of every found
// word replaced by mask, repeated to the word's length in code points.
func ReplaceSensitiveWords(text string, policy MatchPolicy, mask rune) string {
	mustPolicy(policy)
	return mustDefault().Replace(text, policy, mask)
}
