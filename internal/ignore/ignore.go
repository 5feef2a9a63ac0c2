// Package ignore reads .wordmaskignore files: gitignore-like glob lines,
// '#' comments and trailing '/' for directories.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".wordmaskignore"

// Matcher holds the patterns of one ignore file. The zero value matches nothing.
type Matcher struct {
	dirs  []string
	globs []string
}

// Load parses the ignore file at p. A missing file yields an empty Matcher
// together with the open error.
func Load(p string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(p)
	if err != nil {
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "/")
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.globs = append(m.globs, line)
	}
	return m, sc.Err()
}

// Match reports whether the slash- or backslash-separated relative path rel
// is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	segs := strings.Split(rel, "/")
	for _, d := range m.dirs {
		for _, s := range segs[:len(segs)-1] {
			if ok, _ := doublestar.Match(d, s); ok {
				return true
			}
		}
		if ok, _ := doublestar.Match(d+"/**", rel); ok {
			return true
		}
	}
	base := path.Base(rel)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if !strings.Contains(g, "/") {
			if ok, _ := doublestar.Match(g, base); ok {
				return true
			}
		}
	}
	return false
}
