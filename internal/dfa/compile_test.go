package dfa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_SharesPrefixes(t *testing.T) {
	f := Compile([]string{"credit-card-cash-out", "credit-card-advance-repay"})
	assert.Equal(t, 2, f.Words())
	assert.Equal(t, 1, f.Roots())
	// "credit-card-" is shared, the rest is distinct
	shared := len("credit-card-")
	want := shared + len("cash-out") + len("advance-repay")
	assert.Equal(t, want, f.Nodes())
}

func TestCompile_TerminalFlags(t *testing.T) {
	f := Compile([]string{"信用卡", "信用", "代还", "套现", "x"})

	root := f.Root('信')
	if root == nil {
		t.Fatal("expected root for 信")
	}
	assert.False(t, root.Terminal())
	yong := root.Child('用')
	if yong == nil {
		t.Fatal("expected child 用")
	}
	assert.True(t, yong.Terminal(), "信用 is a word on its own")
	ka := yong.Child('卡')
	if ka == nil {
		t.Fatal("expected child 卡")
	}
	assert.True(t, ka.Terminal())
	assert.Equal(t, '卡', ka.Char())

	x := f.Root('x')
	if x == nil {
		t.Fatal("expected root for x")
	}
	assert.True(t, x.Terminal(), "one-character word is a terminal root")
	assert.Nil(t, x.Child('y'))
}

func TestCompile_IgnoresEmptyAndDuplicates(t *testing.T) {
	f := Compile([]string{"", "套现", "套现", ""})
	assert.Equal(t, 1, f.Words())
	assert.Equal(t, 2, f.Nodes())
}

func TestCompile_OrderIndependent(t *testing.T) {
	words := []string{"信用卡", "信用", "信", "代还", "代付", "套现"}
	reversed := make([]string, len(words))
	for i, w := range words {
		reversed[len(words)-1-i] = w
	}
	a, b := Compile(words), Compile(reversed)
	assert.Equal(t, a.Nodes(), b.Nodes())
	assert.Equal(t, a.Words(), b.Words())
	text := "花呗信用卡代还OK套现代付"
	for _, p := range policies {
		assert.Equal(t, a.Find(text, p), b.Find(text, p))
	}
}

func TestCompile_Empty(t *testing.T) {
	f := Compile(nil)
	assert.Equal(t, 0, f.Words())
	assert.Nil(t, f.Root('a'))
}
