package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/wordmask/wordmask/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesCached  int
}

func sortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Column < findings[j].Column
	})
}

// PrintTable renders findings as a bordered table followed by the summary footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No sensitive words found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		withCommit := hasCommits(findings)
		if withCommit {
			table.Header("PATH", "COMMIT", "LINE", "COL", "MATCH", "POLICY")
		} else {
			table.Header("PATH", "LINE", "COL", "MATCH", "POLICY")
		}
		for _, f := range findings {
			row := []string{f.Path, strconv.Itoa(f.Line), strconv.Itoa(f.Column), f.Match, f.Policy}
			if withCommit {
				row = append([]string{f.Path, shortHash(f.Commit)}, row[1:]...)
			}
			_ = table.Append(row)
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

// PrintText renders findings one per line in plain columns.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No sensitive words found ✅")
	} else {
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			m := f.Match
			if !opts.NoColor {
				m = "\x1b[31m" + m + "\x1b[0m" // red
			}
			loc := f.Path
			if f.Commit != "" {
				loc = shortHash(f.Commit) + ":" + loc
			}
			fmt.Fprintf(w, "%s:%d:%d  %s\n", loc, f.Line, f.Column, m)
		}
	}
	printFooter(w, findings, opts)
}

func hasCommits(findings []types.Finding) bool {
	for _, f := range findings {
		if f.Commit != "" {
			return true
		}
	}
	return false
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	distinct := map[string]bool{}
	for _, f := range findings {
		distinct[f.Match] = true
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (distinct words: %d)\n", len(findings), len(distinct))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.FilesCached > 0 {
		fmt.Fprintf(w, "Files unchanged since last clean scan: %d\n", opts.FilesCached)
	}
}
