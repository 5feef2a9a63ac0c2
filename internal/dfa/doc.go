// Package dfa compiles a dictionary of sensitive words into a rune trie and
// walks it over text to find and mask dictionary words. A compiled Filter is
// immutable and safe for concurrent use.
package dfa
