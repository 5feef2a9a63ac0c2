// Package core provides a small, stable facade over wordmask's internal
// dictionary filter for external integrations.
//
// The package-level functions share one process-wide Filter that is built
// on first use from the dictionary named by $WORDMASK_DICTIONARY (default
// "sensitive.txt"). A dictionary that cannot be read is fatal: those
// functions panic rather than run with partial coverage. Programs that want
// to handle the error themselves build their own Filter with Load or New.
//
// Example:
//
//	masked := core.ReplaceSensitiveWords("信用卡之家", core.ShortestMatch, '*')
//	words := core.FindSensitiveWords(text, core.LongestMatch)
package core
