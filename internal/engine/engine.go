package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/wordmask/wordmask/internal/cache"
	"github.com/wordmask/wordmask/internal/dfa"
	"github.com/wordmask/wordmask/internal/ignore"
	"github.com/wordmask/wordmask/internal/logger"
	"github.com/wordmask/wordmask/internal/textenc"
	"github.com/wordmask/wordmask/internal/types"
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root   string
	Filter *dfa.Filter
	Policy types.MatchPolicy
	// DictionaryID fingerprints the dictionary behind Filter; cache entries
	// recorded under a different fingerprint are discarded.
	DictionaryID string
	// Encoding of scanned files; empty means UTF-8, "auto" sniffs each file.
	Encoding        string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DryRun          bool
	DefaultExcludes bool
	NoCache         bool
	// ScanStaged scans the blobs staged in the git index instead of the
	// working tree.
	ScanStaged bool
	// HistoryCommits > 0 scans the files changed by the last N commits.
	HistoryCommits int
	Progress       func()
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesCached  int
	Duration     time.Duration
}

type pendingScan struct {
	path     string
	commit   string
	data     []byte
	cacheVal string
}

const defaultMaxBytes = 1 << 20

func determineBatchSize(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing and counts.
func ScanWithStats(cfg Config) (Result, error) {
	var result Result
	if cfg.Filter == nil {
		return result, errors.New("no dictionary filter configured")
	}
	if !cfg.Policy.Valid() {
		return result, fmt.Errorf("invalid match policy %v", cfg.Policy)
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}

	// a file that scanned clean under one decoding may not under another
	fingerprint := cfg.DictionaryID + "|" + cfg.Policy.String() + "|" + textenc.Canonical(cfg.Encoding)
	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
		if db.Dictionary != fingerprint {
			db.Entries = map[string]string{}
		}
	} else {
		db.Entries = map[string]string{}
	}
	updated := map[string]string{}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	ctx := context.Background()

	var out []types.Finding
	started := time.Now()
	emit := func(fs []types.Finding) {
		out = append(out, fs...)
	}

	var err error
	switch {
	case cfg.ScanStaged:
		err = scanStaged(cfg, ign, emit, &result)
	case cfg.HistoryCommits > 0:
		err = scanHistory(cfg, ign, emit, &result)
	default:
		err = scanFilesystem(ctx, cfg, ign, db, emit, updated, &result)
	}
	if err != nil {
		return result, err
	}

	sortFindings(out)
	result.Findings = out
	result.Duration = time.Since(started)
	if !cfg.NoCache && !cfg.DryRun && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		db.Dictionary = fingerprint
		if err := cache.Save(cfg.Root, db); err != nil {
			logger.Logger.Printf("cache not saved: %v", err)
		}
	}
	return result, nil
}

func scanFilesystem(ctx context.Context, cfg Config, ign ignore.Matcher, db cache.DB, emit func([]types.Finding), updated map[string]string, result *Result) error {
	batchSize := determineBatchSize(cfg.Threads)
	queue := make([]pendingScan, 0, batchSize)
	err := Walk(ctx, cfg, ign, func(p string, data []byte) {
		h := fastHash(data)
		if !cfg.NoCache && db.Entries[p] == h {
			result.FilesCached++
			return
		}
		queue = append(queue, pendingScan{path: p, data: data, cacheVal: h})
		if len(queue) >= batchSize {
			processChunk(cfg, queue, emit, updated, result)
			queue = queue[:0]
		}
	})
	if err != nil {
		return err
	}
	processChunk(cfg, queue, emit, updated, result)
	return nil
}

// processChunk scans a batch of files on cfg.Threads workers sharing the one
// compiled filter. Files that scanned clean are recorded for the cache.
func processChunk(cfg Config, chunk []pendingScan, emit func([]types.Finding), updated map[string]string, res *Result) {
	if len(chunk) == 0 {
		return
	}
	perFile := make([][]types.Finding, len(chunk))
	if !cfg.DryRun {
		var wg sync.WaitGroup
		sem := make(chan struct{}, cfg.Threads)
		for i := range chunk {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				perFile[i] = scanFile(cfg, chunk[i])
				<-sem
			}(i)
		}
		wg.Wait()
	}

	for i, job := range chunk {
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		emit(perFile[i])
		if updated != nil && !cfg.NoCache && !cfg.DryRun && len(perFile[i]) == 0 {
			updated[job.path] = job.cacheVal
		}
	}
}

// scanFile decodes data and reports every scanner hit per line with a
// 1-based code-point column.
func scanFile(cfg Config, job pendingScan) []types.Finding {
	text, err := textenc.Decode(job.data, cfg.Encoding)
	if err != nil {
		logger.DebugLogger.Printf("skip %s: %v", job.path, err)
		return nil
	}
	var out []types.Finding
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		for _, s := range cfg.Filter.Scan(line, cfg.Policy) {
			out = append(out, types.Finding{
				Path:   job.path,
				Commit: job.commit,
				Line:   i + 1,
				Column: s.Start + 1,
				Match:  s.Word,
				Policy: cfg.Policy.String(),
			})
		}
	}
	return out
}

func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].Column < fs[j].Column
	})
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 {
		matched := matchAnyGlob(rp, includes)
		if !matched {
			return false
		}
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
