package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func initRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	p := filepath.Join(r.dir, filepath.FromSlash(name))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(r.t, os.WriteFile(p, []byte(content), 0o644))
}

func (r *testRepo) add(name string) {
	r.t.Helper()
	_, err := r.wt.Add(name)
	require.NoError(r.t, err)
}

func (r *testRepo) commit(msg string) string {
	r.t.Helper()
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
	return h.String()
}

func TestStagedDiff_OnlyIndexContent(t *testing.T) {
	r := initRepo(t)
	r.write("a.txt", "committed\n")
	r.add("a.txt")
	r.commit("add a")

	r.write("b.txt", "staged 套现\n")
	r.add("b.txt")
	// worktree edit after staging must not leak into the result
	r.write("b.txt", "unstaged edit\n")
	// modified but not staged
	r.write("a.txt", "dirty\n")

	paths, data, err := StagedDiff(r.dir)
	require.NoError(t, err)
	require.Equal(t, []string{"b.txt"}, paths)
	assert.Equal(t, "staged 套现\n", string(data[0]))
}

func TestStagedDiff_NotARepo(t *testing.T) {
	_, _, err := StagedDiff(t.TempDir())
	assert.Error(t, err)
}

func TestLastNCommits(t *testing.T) {
	r := initRepo(t)
	r.write("a.txt", "hello")
	r.add("a.txt")
	first := r.commit("add a")

	r.write("b.txt", "world")
	r.write("a.txt", "hello again")
	r.add("b.txt")
	r.add("a.txt")
	second := r.commit("add b, edit a")

	entries, err := LastNCommits(r.dir, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second, entries[0].Hash)
	assert.Equal(t, "hello again", string(entries[0].Files["a.txt"]))
	assert.Equal(t, "world", string(entries[0].Files["b.txt"]))

	assert.Equal(t, first, entries[1].Hash)
	assert.Equal(t, map[string][]byte{"a.txt": []byte("hello")}, entries[1].Files)

	entries, err = LastNCommits(r.dir, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSubdirectoryRoot(t *testing.T) {
	r := initRepo(t)
	r.write("top.txt", "top")
	r.write("sub/a.txt", "first")
	r.add("top.txt")
	r.add("sub/a.txt")
	r.commit("initial")

	r.write("top.txt", "top edit")
	r.write("sub/deeper/b.txt", "staged")
	r.add("top.txt")
	r.add("sub/deeper/b.txt")

	paths, data, err := StagedDiff(filepath.Join(r.dir, "sub"))
	require.NoError(t, err)
	assert.Equal(t, []string{"deeper/b.txt"}, paths)
	assert.Equal(t, "staged", string(data[0]))

	entries, err := LastNCommits(filepath.Join(r.dir, "sub"), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, map[string][]byte{"a.txt": []byte("first")}, entries[0].Files)
}

func TestLastNCommits_Zero(t *testing.T) {
	entries, err := LastNCommits(t.TempDir(), 0)
	assert.NoError(t, err)
	assert.Nil(t, entries)
}

func TestValidateRoot(t *testing.T) {
	_, err := validateRoot("bad\x00path")
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = validateRoot(f)
	assert.Error(t, err)
}
