package dfa

// Node is one code point on the path of one or more dictionary words.
// Children are owned by their parent; traversal is always root to leaf.
type Node struct {
	char     rune
	terminal bool
	children map[rune]*Node
}

func newNode(ch rune) *Node {
	return &Node{char: ch, children: make(map[rune]*Node)}
}

// Char returns the code point this node stands for.
func (n *Node) Char() rune { return n.char }

// Terminal reports whether the path ending here spells a complete word.
func (n *Node) Terminal() bool { return n.terminal }

// Child returns the child for ch, or nil.
func (n *Node) Child(ch rune) *Node { return n.children[ch] }

// Forest maps the first code point of every dictionary word to the root of
// the subtree holding all words that start with it.
type Forest map[rune]*Node

// Filter is a compiled dictionary.
type Filter struct {
	roots Forest
	words int
	nodes int
}

// Compile builds a Filter from words. Duplicates and empty strings are
// ignored; the resulting trie does not depend on the order of words.
func Compile(words []string) *Filter {
	f := &Filter{roots: make(Forest)}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		f.insert(w)
		f.words++
	}
	return f
}

func (f *Filter) insert(word string) {
	var node *Node
	for _, ch := range word {
		var next *Node
		if node == nil {
			next = f.roots[ch]
			if next == nil {
				next = newNode(ch)
				f.roots[ch] = next
				f.nodes++
			}
		} else {
			next = node.children[ch]
			if next == nil {
				next = newNode(ch)
				node.children[ch] = next
				f.nodes++
			}
		}
		node = next
	}
	node.terminal = true
}

// Root returns the root node for words starting with ch, or nil.
func (f *Filter) Root(ch rune) *Node { return f.roots[ch] }

// Roots returns the number of distinct first code points.
func (f *Filter) Roots() int { return len(f.roots) }

// Words returns the number of distinct dictionary words compiled.
func (f *Filter) Words() int { return f.words }

// Nodes returns the total number of trie nodes.
func (f *Filter) Nodes() int { return f.nodes }
