package dfa

import (
	"testing"

	"github.com/wordmask/wordmask/internal/types"
)

var policies = []types.MatchPolicy{types.ShortestMatch, types.LongestMatch}

func TestProbe(t *testing.T) {
	f := Compile([]string{"信用卡", "信用", "代还", "套现", "a", "信用卡套现"})
	tests := []struct {
		name     string
		text     string
		offset   int
		shortest int
		longest  int
	}{
		{"no root", "花呗", 0, 0, 0},
		{"shortest stops at prefix word", "信用卡代还", 0, 2, 3},
		{"longest follows the whole chain", "信用卡套现", 0, 2, 5},
		{"chain breaks before the long word", "信用卡套利", 0, 2, 3},
		{"single code point word", "abc", 0, 1, 1},
		{"offset inside text", "花呗代还", 2, 2, 2},
		{"offset at end", "代还", 2, 0, 0},
		{"offset past end", "代还", 9, 0, 0},
		{"negative offset", "代还", -1, 0, 0},
		{"text ends mid word", "信", 0, 0, 0},
		{"empty text", "", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes := []rune(tt.text)
			if got := f.Probe(runes, tt.offset, types.ShortestMatch); got != tt.shortest {
				t.Fatalf("shortest: got %d want %d", got, tt.shortest)
			}
			if got := f.Probe(runes, tt.offset, types.LongestMatch); got != tt.longest {
				t.Fatalf("longest: got %d want %d", got, tt.longest)
			}
		})
	}
}

func TestProbe_LongestOnlyConfirmsTerminalNodes(t *testing.T) {
	// 信用卡 is only a path towards 信用卡套现, not a word
	f := Compile([]string{"信用", "信用卡套现"})
	if got := f.Probe([]rune("信用卡x"), 0, types.LongestMatch); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
}

func TestProbe_ShortestNeverExceedsLongest(t *testing.T) {
	f := Compile(sampleDictionary)
	for _, text := range sampleTexts {
		runes := []rune(text)
		for i := range runes {
			s := f.Probe(runes, i, types.ShortestMatch)
			l := f.Probe(runes, i, types.LongestMatch)
			if s > l {
				t.Fatalf("%q offset %d: shortest %d > longest %d", text, i, s, l)
			}
			if s == 0 && l != 0 {
				t.Fatalf("%q offset %d: longest matched without a shortest match", text, i)
			}
		}
	}
}

func TestProbe_EmptyFilter(t *testing.T) {
	f := Compile(nil)
	for _, p := range policies {
		if got := f.Probe([]rune("anything"), 0, p); got != 0 {
			t.Fatalf("%v: got %d", p, got)
		}
	}
}
