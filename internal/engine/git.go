package engine

import (
	"sort"

	"github.com/wordmask/wordmask/internal/git"
	"github.com/wordmask/wordmask/internal/ignore"
	"github.com/wordmask/wordmask/internal/types"
)

// scanStaged scans the index content of every staged path. The incremental
// cache only covers the working tree, so nothing is recorded here.
func scanStaged(cfg Config, ign ignore.Matcher, emit func([]types.Finding), result *Result) error {
	files, data, err := git.StagedDiff(cfg.Root)
	if err != nil {
		return err
	}
	jobs := make([]pendingScan, 0, len(files))
	for i, p := range files {
		if !blobEligible(cfg, ign, p, data[i]) {
			continue
		}
		jobs = append(jobs, pendingScan{path: p, data: data[i]})
	}
	runJobs(cfg, jobs, emit, result)
	return nil
}

// scanHistory scans the files changed by the last cfg.HistoryCommits commits.
// Findings carry the commit hash.
func scanHistory(cfg Config, ign ignore.Matcher, emit func([]types.Finding), result *Result) error {
	entries, err := git.LastNCommits(cfg.Root, cfg.HistoryCommits)
	if err != nil {
		return err
	}
	var jobs []pendingScan
	for _, e := range entries {
		paths := make([]string, 0, len(e.Files))
		for p := range e.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			blob := e.Files[p]
			if !blobEligible(cfg, ign, p, blob) {
				continue
			}
			jobs = append(jobs, pendingScan{path: p, commit: e.Hash, data: blob})
		}
	}
	runJobs(cfg, jobs, emit, result)
	return nil
}

// blobEligible applies the working-tree selection rules to content that does
// not live on disk.
func blobEligible(cfg Config, ign ignore.Matcher, p string, data []byte) bool {
	if !allowedByGlobs(p, cfg) || ign.Match(p) {
		return false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(p) {
		return false
	}
	if int64(len(data)) > cfg.MaxBytes {
		return false
	}
	return contentEligible(p, data)
}

func runJobs(cfg Config, jobs []pendingScan, emit func([]types.Finding), result *Result) {
	batchSize := determineBatchSize(cfg.Threads)
	for len(jobs) > 0 {
		end := batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		processChunk(cfg, jobs[:end], emit, nil, result)
		jobs = jobs[end:]
	}
}
