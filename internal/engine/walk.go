package engine

import (
	"bytes"
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/wordmask/wordmask/internal/ignore"
	"github.com/wordmask/wordmask/internal/logger"
)

// IgnoreFileDirective in a file's content excludes the whole file.
const IgnoreFileDirective = "wordmask:ignore-file"

// Walk traverses the tree under cfg.Root and invokes handle for each eligible
// file with its slash-separated relative path. It stops early when ctx is
// cancelled.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			logger.DebugLogger.Printf("walk %s: %v", p, err)
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, ok := eligible(cfg, ign, p, d)
		if !ok {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			logger.DebugLogger.Printf("read %s: %v", rel, err)
			return nil
		}
		if !contentEligible(rel, b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// eligible applies the cheap, metadata-only selection rules.
func eligible(cfg Config, ign ignore.Matcher, p string, d fs.DirEntry) (string, bool) {
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !allowedByGlobs(rel, cfg) {
		return rel, false
	}
	if ign.Match(rel) {
		return rel, false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(rel) {
		return rel, false
	}
	if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
		return rel, false
	}
	return rel, true
}

// contentEligible applies the rules that need a file's bytes: the ignore
// directive and binary or media content.
func contentEligible(rel string, b []byte) bool {
	if bytes.Contains(b, []byte(IgnoreFileDirective)) {
		return false
	}
	return !looksBinary(b) && !looksNonTextMIME(rel, b)
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			// UTF-16 text has NULs too; a BOM says it is text.
			if len(b) >= 2 && ((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)) {
				return false
			}
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content (e.g., images) in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4 {
		return true
	}
	return false
}

// CountTargets estimates the number of files a scan would read, without
// reading them.
func CountTargets(cfg Config) (int, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := eligible(cfg, ign, p, d); ok {
			count++
		}
		return nil
	})
	return count, err
}
