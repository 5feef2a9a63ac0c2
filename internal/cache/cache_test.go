package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir)
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Dictionary = "abc|shortest"
	db.Entries["a.txt"] = "deadbeef"
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	// file should exist
	if _, err := os.Stat(filepath.Join(dir, ".wordmaskcache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	// load again and verify
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if got := db2.Entries["a.txt"]; got != "deadbeef" {
		t.Fatalf("unexpected entry: %q", got)
	}
	if db2.Dictionary != "abc|shortest" {
		t.Fatalf("unexpected dictionary fingerprint: %q", db2.Dictionary)
	}
}

func TestSaveUnderGitDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, DB{Entries: map[string]string{"b.txt": "01"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git", "wordmaskcache.json")); err != nil {
		t.Fatalf("cache file not written under .git: %v", err)
	}
}

func TestSaveRejectsNilEntries(t *testing.T) {
	if err := Save(t.TempDir(), DB{}); err == nil {
		t.Fatal("expected error for nil entries")
	}
}
