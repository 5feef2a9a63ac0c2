package redact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wordmask/wordmask/internal/dfa"
	"github.com/wordmask/wordmask/internal/types"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestApplyAndWouldChange(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "redact-*.txt")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	_ = f.Close()

	original := "花呗信用卡代还OK套现\n正常内容\n"
	if err := os.WriteFile(path, []byte(original), 0640); err != nil {
		t.Fatal(err)
	}

	filter := dfa.Compile([]string{"信用卡", "信用", "代还", "套现"})
	opts := Options{Policy: types.LongestMatch, Mask: '*'}

	would, err := WouldChange(path, filter, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !would {
		t.Fatalf("expected WouldChange to be true")
	}

	changed, err := Apply(path, filter, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatalf("expected Apply to modify the file")
	}

	b, _ := os.ReadFile(path)
	if got := string(b); got != "花呗*****OK**\n正常内容\n" {
		t.Fatalf("unexpected contents: %q", got)
	}
	if info, _ := os.Stat(path); info.Mode().Perm() != 0640 {
		t.Fatalf("permissions not preserved: %v", info.Mode().Perm())
	}

	// second apply should be no-op
	changed, err = Apply(path, filter, opts)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatalf("expected second Apply to be no change")
	}
}

func TestApply_GBKRoundTrip(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().String("马上套现信用卡")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "gbk.txt")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	filter := dfa.Compile([]string{"套现"})
	changed, err := Apply(path, filter, Options{Policy: types.ShortestMatch, Mask: '*', Encoding: "gbk"})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	b, _ := os.ReadFile(path)
	got, err := simplifiedchinese.GBK.NewDecoder().String(string(b))
	if err != nil {
		t.Fatal(err)
	}
	if got != "马上**信用卡" {
		t.Fatalf("unexpected contents: %q", got)
	}
}

func TestApply_UTF16KeepsBOM(t *testing.T) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	encode := func(s string) []byte {
		b, err := utf16le.NewEncoder().Bytes([]byte(s))
		if err != nil {
			t.Fatal(err)
		}
		return append([]byte{0xFF, 0xFE}, b...)
	}
	filter := dfa.Compile([]string{"套现"})

	for _, declared := range []string{"utf-16le", "", "gbk"} {
		path := filepath.Join(t.TempDir(), "utf16.txt")
		if err := os.WriteFile(path, encode("马上套现\n"), 0644); err != nil {
			t.Fatal(err)
		}
		changed, err := Apply(path, filter, Options{Policy: types.ShortestMatch, Mask: '*', Encoding: declared})
		if err != nil {
			t.Fatalf("encoding %q: %v", declared, err)
		}
		if !changed {
			t.Fatalf("encoding %q: expected change", declared)
		}
		b, _ := os.ReadFile(path)
		if want := encode("马上**\n"); string(b) != string(want) {
			t.Fatalf("encoding %q: got % x, want % x", declared, b, want)
		}
	}
}

func TestApply_Missing(t *testing.T) {
	filter := dfa.Compile([]string{"套现"})
	if _, err := Apply(filepath.Join(t.TempDir(), "none.txt"), filter, Options{Policy: types.ShortestMatch, Mask: '*'}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
