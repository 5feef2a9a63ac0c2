// Package audit keeps an append-only JSONL history of scans and redactions.
// Records hold counts and paths only; matched words are never written.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/wordmask/wordmask/internal/types"
)

// Record kinds.
const (
	KindScan   = "scan"
	KindRedact = "redact"
)

type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Root          string    `json:"root"`
	Policy        string    `json:"policy"`
	Dictionary    string    `json:"dictionary,omitempty"`
	TotalFindings int       `json:"total_findings"`
	NewFindings   int       `json:"new_findings"`
	DistinctWords int       `json:"distinct_words"`
	FilesScanned  int       `json:"files_scanned,omitempty"`
	FilesChanged  []string  `json:"files_changed,omitempty"`
	Duration      string    `json:"duration,omitempty"`
}

type Log struct {
	path string
}

// New places the log under .git when root is a repository so it stays out of
// the working tree.
func New(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	p := filepath.Join(root, ".wordmask_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		p = filepath.Join(gitDir, "wordmask_audit.jsonl")
	}
	return &Log{path: p}
}

// Path returns the file the log writes to.
func (a *Log) Path() string { return a.path }

// History returns all records, newest first. A missing log is empty.
func (a *Log) History() ([]Record, error) {
	f, err := os.Open(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []Record
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var r Record
		if err := decoder.Decode(&r); err != nil {
			break
		}
		records = append(records, r)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes r as one JSON line.
func (a *Log) Append(r Record) error {
	if r.ID == "" {
		r.ID = fmt.Sprintf("%s_%d", r.Kind, r.Timestamp.UnixNano())
	}
	// owner-only: the log names files that held sensitive words
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// ScanRecord summarises a scan. newFindings are those not covered by the
// baseline.
func ScanRecord(root, policy, dictionary string, all, newFindings []types.Finding, filesScanned int, d time.Duration) Record {
	return Record{
		Timestamp:     time.Now(),
		Kind:          KindScan,
		Root:          root,
		Policy:        policy,
		Dictionary:    dictionary,
		TotalFindings: len(all),
		NewFindings:   len(newFindings),
		DistinctWords: distinct(all),
		FilesScanned:  filesScanned,
		Duration:      d.String(),
	}
}

// RedactRecord summarises an in-place redaction.
func RedactRecord(root, policy, dictionary string, findings []types.Finding, changed []string) Record {
	return Record{
		Timestamp:     time.Now(),
		Kind:          KindRedact,
		Root:          root,
		Policy:        policy,
		Dictionary:    dictionary,
		TotalFindings: len(findings),
		NewFindings:   len(findings),
		DistinctWords: distinct(findings),
		FilesChanged:  changed,
	}
}

func distinct(findings []types.Finding) int {
	seen := map[string]bool{}
	for _, f := range findings {
		seen[f.Match] = true
	}
	return len(seen)
}
