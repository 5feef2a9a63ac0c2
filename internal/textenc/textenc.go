// Package textenc turns raw file bytes into UTF-8 text. Dictionaries and
// scanned files may be stored in legacy Chinese encodings; matching itself
// only ever sees decoded code points.
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/wordmask/wordmask/internal/logger"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Auto selects the encoding by sniffing the content.
const Auto = "auto"

// Lookup resolves an encoding name. The empty name means UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	switch Canonical(name) {
	case "utf8":
		return unicode.UTF8, nil
	case "gbk":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	case "big5":
		return traditionalchinese.Big5, nil
	case "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Canonical folds an encoding name to a stable key: case, '-' and '_' are
// ignored, aliases collapse and the empty name is "utf8".
func Canonical(name string) string {
	switch n := normalize(name); n {
	case "":
		return "utf8"
	case "gb2312", "cp936":
		return "gbk"
	default:
		return n
	}
}

// byteOrderMarks lists the marks SplitBOM recognises, longest first.
var byteOrderMarks = []struct {
	mark []byte
	enc  encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, unicode.UTF8},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
}

// SplitBOM returns the byte order mark b starts with and the encoding it
// announces, or nil and nil when there is none.
func SplitBOM(b []byte) ([]byte, encoding.Encoding) {
	for _, m := range byteOrderMarks {
		if bytes.HasPrefix(b, m.mark) {
			return b[:len(m.mark)], m.enc
		}
	}
	return nil, nil
}

func normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "")
	return strings.ReplaceAll(n, "_", "")
}

// Resolve picks the encoding for b: by detection when name is Auto,
// otherwise by name.
func Resolve(b []byte, name string) (encoding.Encoding, error) {
	if normalize(name) == Auto {
		return Detect(b), nil
	}
	return Lookup(name)
}

// IsUTF8 reports whether enc is plain UTF-8, where bytes can be used as is.
func IsUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8
}

// Decode converts b to a UTF-8 string using the named encoding, or by
// detection when name is Auto. A leading byte order mark always wins and is
// stripped.
func Decode(b []byte, name string) (string, error) {
	enc, err := Resolve(b, name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), b)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// Detect guesses the encoding of b. Valid UTF-8 is taken as is; otherwise
// chardet decides, falling back to UTF-8 for charsets we do not handle.
func Detect(b []byte) encoding.Encoding {
	if utf8.Valid(b) {
		return unicode.UTF8
	}
	res, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil {
		logger.Logger.Printf("charset detection failed: %v, assuming UTF-8", err)
		return unicode.UTF8
	}
	enc, err := Lookup(res.Charset)
	if err != nil {
		logger.Logger.Printf("unsupported charset %s, assuming UTF-8", res.Charset)
		return unicode.UTF8
	}
	logger.DebugLogger.Printf("detected charset %s (confidence %d)", res.Charset, res.Confidence)
	return enc
}
