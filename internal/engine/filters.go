package engine

import (
	"path"
	"strings"
)

// directories never worth descending into when default excludes are on
var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".venv":        true,
	"__pycache__":  true,
	"coverage":     true,
}

// binary or packed formats whose bytes are not readable text
var defaultExcludeFileSuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".bmp",
	".mp3", ".mp4", ".mov", ".wav",
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".gz", ".tgz", ".tar", ".7z", ".rar", ".xz", ".bz2",
	".exe", ".dll", ".so", ".dylib", ".a", ".o", ".class", ".jar", ".wasm", ".pyc",
	".min.js", ".map",
}

// files wordmask itself writes next to the scanned tree
var defaultExcludeFileNames = map[string]bool{
	".wordmaskcache.json":    true,
	".wordmask_audit.jsonl":  true,
	"wordmask.baseline.json": true,
	".DS_Store":              true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

func isDefaultFileExcluded(rel string) bool {
	lower := strings.ToLower(strings.ReplaceAll(rel, "\\", "/"))
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return defaultExcludeFileNames[path.Base(lower)] || strings.HasSuffix(lower, ".lock")
}
