// Package engine contains the scanning logic for wordmask. It traverses the
// working tree, the staged index or recent commits, runs the compiled
// dictionary over every line, and returns structured findings. This package
// is internal; external consumers should use the stable facade in pkg/core.
package engine
