// Package git reads file contents out of a git repository: the blobs staged
// in the index and the files touched by recent commits. Paths are
// slash-separated and relative to the directory the caller passed in; files
// outside that directory are left out.
package git

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Entry is one commit with the post-commit content of every file it added or
// modified.
type Entry struct {
	Hash  string
	Files map[string][]byte
}

// validateRoot validates and normalizes a repository path.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// scope maps repository paths onto a subdirectory of the worktree.
type scope string

// rel returns p relative to the scope, or false when p lies outside it.
func (s scope) rel(p string) (string, bool) {
	if s == "" {
		return p, true
	}
	rest, ok := strings.CutPrefix(p, string(s)+"/")
	return rest, ok
}

// open finds the repository containing root and the scope of root inside
// its worktree.
func open(root string) (*gogit.Repository, scope, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, "", err
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("open repository %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", err
	}
	prefix, err := filepath.Rel(wt.Filesystem.Root(), validRoot)
	if err != nil || strings.HasPrefix(prefix, "..") {
		return nil, "", fmt.Errorf("%s is outside the worktree of its repository", root)
	}
	if prefix == "." {
		prefix = ""
	}
	return repo, scope(filepath.ToSlash(prefix)), nil
}

// StagedDiff returns the paths that differ between HEAD and the index, with
// the staged content of each. Deleted paths are omitted.
func StagedDiff(root string) ([]string, [][]byte, error) {
	repo, sc, err := open(root)
	if err != nil {
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, nil, err
	}

	var paths []string
	for p, st := range status {
		switch st.Staging {
		case gogit.Added, gogit.Modified, gogit.Renamed, gogit.Copied:
			if _, ok := sc.rel(p); ok {
				paths = append(paths, p)
			}
		}
	}
	sort.Strings(paths)

	data := make([][]byte, 0, len(paths))
	kept := paths[:0]
	for _, p := range paths {
		e, err := idx.Entry(p)
		if err != nil {
			continue
		}
		blob, err := repo.BlobObject(e.Hash)
		if err != nil {
			continue
		}
		b, err := readBlob(blob)
		if err != nil {
			return nil, nil, fmt.Errorf("read staged %s: %w", p, err)
		}
		rel, _ := sc.rel(p)
		kept = append(kept, rel)
		data = append(data, b)
	}
	return kept, data, nil
}

func readBlob(blob *object.Blob) ([]byte, error) {
	r, err := blob.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// LastNCommits walks back from HEAD and returns up to n commits, newest first.
// Binary files are skipped.
func LastNCommits(root string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	repo, sc, err := open(root)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for len(entries) < n {
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entries, err
		}
		files, err := changedFiles(c, sc)
		if err != nil {
			return entries, fmt.Errorf("commit %s: %w", c.Hash, err)
		}
		entries = append(entries, Entry{Hash: c.Hash.String(), Files: files})
	}
	return entries, nil
}

// changedFiles diffs c against its first parent; a root commit contributes
// its whole tree.
func changedFiles(c *object.Commit, sc scope) (map[string][]byte, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	files := map[string][]byte{}
	if c.NumParents() == 0 {
		err := tree.Files().ForEach(func(f *object.File) error {
			return addFile(files, sc, f)
		})
		return files, err
	}
	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, err
	}
	for _, ch := range changes {
		if ch.To.Name == "" {
			continue // deleted
		}
		f, err := tree.File(ch.To.Name)
		if err != nil {
			continue
		}
		if err := addFile(files, sc, f); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func addFile(files map[string][]byte, sc scope, f *object.File) error {
	rel, ok := sc.rel(f.Name)
	if !ok {
		return nil
	}
	if bin, err := f.IsBinary(); err != nil || bin {
		return nil
	}
	s, err := f.Contents()
	if err != nil {
		return err
	}
	files[rel] = []byte(s)
	return nil
}
