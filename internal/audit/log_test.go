package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordmask/wordmask/internal/types"
)

func TestNew_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, ".wordmask_audit.jsonl"), New(dir).Path())

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	assert.Equal(t, filepath.Join(dir, ".git", "wordmask_audit.jsonl"), New(dir).Path())
}

func TestAppendAndHistory_NewestFirst(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)
	fs := []types.Finding{
		{Path: "a.txt", Line: 1, Match: "套现"},
		{Path: "b.txt", Line: 1, Match: "套现"},
		{Path: "b.txt", Line: 2, Match: "代还"},
	}
	require.NoError(t, log.Append(ScanRecord(dir, "shortest", "abc", fs, fs[:1], 2, time.Second)))
	require.NoError(t, log.Append(RedactRecord(dir, "shortest", "abc", fs, []string{"a.txt", "b.txt"})))

	recs, err := log.History()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, KindRedact, recs[0].Kind)
	assert.Equal(t, []string{"a.txt", "b.txt"}, recs[0].FilesChanged)
	assert.NotEmpty(t, recs[0].ID)

	assert.Equal(t, KindScan, recs[1].Kind)
	assert.Equal(t, 3, recs[1].TotalFindings)
	assert.Equal(t, 1, recs[1].NewFindings)
	assert.Equal(t, 2, recs[1].DistinctWords)
	assert.Equal(t, "1s", recs[1].Duration)
}

func TestAppend_NeverWritesWords(t *testing.T) {
	dir := t.TempDir()
	log := New(dir)
	fs := []types.Finding{{Path: "a.txt", Line: 1, Match: "套现"}}
	require.NoError(t, log.Append(ScanRecord(dir, "longest", "", fs, fs, 1, 0)))

	b, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(b), "套现"))

	info, err := os.Stat(log.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestHistory_Missing(t *testing.T) {
	recs, err := New(t.TempDir()).History()
	require.NoError(t, err)
	assert.Empty(t, recs)
}
