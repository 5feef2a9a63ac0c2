// Package dictionary reads sensitive-word lists: one word per line, with set
// semantics. A dictionary that cannot be read is fatal to callers; there is
// no partial or fallback list.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/wordmask/wordmask/internal/logger"
	"github.com/wordmask/wordmask/internal/textenc"
)

// DefaultPath is used when neither flags, config nor environment name a file.
const DefaultPath = "sensitive.txt"

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "WORDMASK_DICTIONARY"

// ErrDictionaryLoad wraps every failure to read a dictionary source.
var ErrDictionaryLoad = errors.New("cannot load sensitive word dictionary")

// Options control how the source bytes are decoded.
type Options struct {
	// Encoding is a charset name understood by textenc, or "auto".
	// Empty means UTF-8.
	Encoding string
}

// Path resolves the dictionary location: explicit value, then $WORDMASK_DICTIONARY,
// then DefaultPath.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the dictionary at path and returns its distinct words sorted.
func Load(path string, opts Options) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDictionaryLoad, err)
	}
	text, err := textenc.Decode(b, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDictionaryLoad, path, err)
	}
	words, err := Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDictionaryLoad, path, err)
	}
	logger.Logger.Printf("loaded %d words from %s", len(words), path)
	return words, nil
}

// Parse reads newline-delimited words from r. Line endings (LF or CRLF) are
// stripped, blank lines skipped and duplicates collapsed.
func Parse(r io.Reader) ([]string, error) {
	set := map[string]struct{}{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		w := strings.TrimSuffix(sc.Text(), "\r")
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

// Fingerprint identifies a word list independent of its order, so caches keyed
// on it survive reordering of the source file.
func Fingerprint(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	d := xxhash.New()
	for _, w := range sorted {
		_, _ = d.WriteString(w)
		_, _ = d.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
