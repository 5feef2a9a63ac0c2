package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// StateFiles are the files wordmask writes into a scanned tree.
var StateFiles = []string{".wordmaskcache.json", ".wordmask_audit.jsonl"}

// AppendGitignore adds each pattern missing from root/.gitignore, creating
// the file if needed, and returns the patterns it added.
func AppendGitignore(root string, patterns ...string) ([]string, error) {
	path := filepath.Join(root, ".gitignore")
	existing := map[string]bool{}
	endsWithNewline := true
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	}
	var added []string
	for _, p := range patterns {
		if !existing[p] {
			existing[p] = true
			added = append(added, p)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var sb strings.Builder
	if !endsWithNewline {
		sb.WriteByte('\n')
	}
	for _, p := range added {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return nil, err
	}
	return added, nil
}
