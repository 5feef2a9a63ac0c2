package engine

import (
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordmask/wordmask/internal/types"
)

func commitAll(t *testing.T, wt *gogit.Worktree, msg string) string {
	t.Helper()
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	h, err := wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return h.String()
}

func TestScanWithStats_Staged(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	mustWrite(t, dir, "old.txt", "套现\n")
	commitAll(t, wt, "initial")

	mustWrite(t, dir, "new.txt", "line\n信用卡代还\n")
	_, err = wt.Add("new.txt")
	require.NoError(t, err)

	res, err := ScanWithStats(Config{Root: dir, Filter: testFilter(), Policy: types.ShortestMatch, ScanStaged: true, NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesScanned)
	assert.Equal(t, []types.Finding{
		{Path: "new.txt", Line: 2, Column: 1, Match: "信用", Policy: "shortest"},
		{Path: "new.txt", Line: 2, Column: 4, Match: "代还", Policy: "shortest"},
	}, res.Findings)
}

func TestScanWithStats_History(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	mustWrite(t, dir, "a.txt", "马上套现\n")
	first := commitAll(t, wt, "add a")
	mustWrite(t, dir, "a.txt", "cleaned\n")
	commitAll(t, wt, "clean a")

	// the working tree is clean, only history still holds the word
	fs, err := Scan(Config{Root: dir, Filter: testFilter(), Policy: types.ShortestMatch, DefaultExcludes: true, NoCache: true})
	require.NoError(t, err)
	assert.Empty(t, fs)

	fs, err = Scan(Config{Root: dir, Filter: testFilter(), Policy: types.ShortestMatch, HistoryCommits: 2, NoCache: true})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, first, fs[0].Commit)
	assert.Equal(t, "a.txt", fs[0].Path)
	assert.Equal(t, 3, fs[0].Column)
}

func TestScanWithStats_StagedSkipsIgnoredAndRebasesPaths(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	mustWrite(t, dir, "README", "root\n")
	commitAll(t, wt, "initial")

	mustWrite(t, dir, "pkg/skip.txt", "// wordmask:ignore-file\n套现\n")
	mustWrite(t, dir, "pkg/logo.png", "\x89PNG\r\n\x1a\n套现")
	mustWrite(t, dir, "pkg/notes.txt", "代还\n")
	mustWrite(t, dir, "other.txt", "套现\n")
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))

	res, err := ScanWithStats(Config{Root: filepath.Join(dir, "pkg"), Filter: testFilter(), Policy: types.ShortestMatch, ScanStaged: true, NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesScanned)
	assert.Equal(t, []types.Finding{
		{Path: "notes.txt", Line: 1, Column: 1, Match: "代还", Policy: "shortest"},
	}, res.Findings)
}
