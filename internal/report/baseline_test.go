package report

import (
	"path/filepath"
	"testing"

	"github.com/wordmask/wordmask/internal/types"
)

func TestBaseline_FilterNewFindings(t *testing.T) {
	p := filepath.Join(t.TempDir(), BaselineFile)
	accepted := []types.Finding{{Path: "a.txt", Line: 1, Match: "套现"}}
	if err := SaveBaseline(p, accepted); err != nil {
		t.Fatalf("SaveBaseline: %v", err)
	}
	base, err := LoadBaseline(p)
	if err != nil {
		t.Fatalf("LoadBaseline: %v", err)
	}
	current := []types.Finding{
		{Path: "a.txt", Line: 9, Match: "套现"},
		{Path: "a.txt", Line: 2, Match: "代还"},
		{Path: "b.txt", Line: 1, Match: "套现"},
	}
	got := FilterNewFindings(current, base)
	if len(got) != 2 {
		t.Fatalf("expected 2 new findings, got %+v", got)
	}
	for _, f := range got {
		if f.Path == "a.txt" && f.Match == "套现" {
			t.Fatalf("baselined finding leaked: %+v", f)
		}
	}
}

func TestLoadBaseline_Missing(t *testing.T) {
	b, err := LoadBaseline(filepath.Join(t.TempDir(), "none.json"))
	if err == nil {
		t.Fatal("expected error for missing baseline")
	}
	if b.Items == nil {
		t.Fatal("expected initialised items")
	}
}

func TestBaseline_AddAndSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), BaselineFile)
	base, _ := LoadBaseline(p) // missing file still yields a usable baseline
	f := types.Finding{Path: "a.txt", Line: 3, Match: "代还"}
	if base.Has(f) {
		t.Fatal("expected empty baseline")
	}
	base.Add(f)
	if err := base.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := LoadBaseline(p)
	if err != nil {
		t.Fatalf("LoadBaseline: %v", err)
	}
	if !reloaded.Has(types.Finding{Path: "a.txt", Line: 7, Match: "代还"}) {
		t.Fatal("expected finding to be baselined regardless of line")
	}
}
