package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.pem\n# comment\n\nsecret.env\ndocs/**/*.md\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js": true,
		"web/node_modules/a.txt":    true,
		"certs/key.pem":             true,
		"secret.env":                true,
		"docs/zh/guide.md":          true,
		"README.md":                 false,
		"src/app.go":                false,
		"# comment":                 false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestIgnoreMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected error for missing ignore file")
	}
	if m.Match("anything.txt") {
		t.Fatal("empty matcher must not match")
	}
}
