// Package redact masks dictionary words inside files in place.
package redact

import (
	"bytes"
	"fmt"
	"os"

	"github.com/wordmask/wordmask/internal/textenc"
	"github.com/wordmask/wordmask/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Masker is satisfied by *dfa.Filter.
type Masker interface {
	Replace(text string, policy types.MatchPolicy, mask rune) string
}

// Options select the policy, mask character and file encoding.
type Options struct {
	Policy   types.MatchPolicy
	Mask     rune
	Encoding string
}

// WouldChange reports whether Apply would modify the file at path.
func WouldChange(path string, m Masker, opts Options) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, err := mask(b, m, opts)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return !bytes.Equal(b, out), nil
}

// Apply rewrites the file at path with every dictionary word masked and
// reports whether the content changed. File permissions are preserved.
func Apply(path string, m Masker, opts Options) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, err := mask(b, m, opts)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if bytes.Equal(b, out) {
		return false, nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// mask keeps a leading byte order mark and encodes the body with the
// encoding the mark announces. UTF-8 input is masked on the raw string so
// bytes outside masked words survive untouched; other encodings round-trip
// through UTF-8.
func mask(b []byte, m Masker, opts Options) ([]byte, error) {
	if mark, enc := textenc.SplitBOM(b); mark != nil {
		body, err := maskWith(b[len(mark):], enc, m, opts)
		if err != nil {
			return nil, err
		}
		return append(append(make([]byte, 0, len(mark)+len(body)), mark...), body...), nil
	}
	enc, err := textenc.Resolve(b, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return maskWith(b, enc, m, opts)
}

func maskWith(b []byte, enc encoding.Encoding, m Masker, opts Options) ([]byte, error) {
	if textenc.IsUTF8(enc) {
		return []byte(m.Replace(string(b), opts.Policy, opts.Mask)), nil
	}
	text, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	masked := m.Replace(string(text), opts.Policy, opts.Mask)
	if masked == string(text) {
		return b, nil
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(masked))
	if err != nil {
		return nil, fmt.Errorf("encode mask %q: %w", opts.Mask, err)
	}
	return out, nil
}
