// Package wordmask provides the command-line interface for the wordmask tool.
// It configures subcommands (find, mask, scan, redact, dict, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/wordmask/wordmask/cmd/wordmask"
//	func main() { wordmask.Execute() }
package wordmask
