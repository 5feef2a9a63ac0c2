// Package update checks GitHub releases for newer wordmask versions and
// replaces the running binary on request.
package update

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const (
	// RepoSlug is the GitHub repository releases are published to.
	RepoSlug      = "wordmask/wordmask"
	cacheFileName = "update.json"
	checkInterval = 24 * time.Hour
)

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

// detectLatest returns the newest released version, or "" when the
// repository has no releases.
var detectLatest = func(slug string) (string, error) {
	rel, found, err := selfupdate.DetectLatest(slug)
	if err != nil || !found {
		return "", err
	}
	return rel.Version.String(), nil
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "wordmask")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "wordmask")
}

func loadCache() (cache, error) {
	var c cache
	dir := configDir()
	if dir == "" {
		return c, errors.New("no config dir")
	}
	b, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return c, err
	}
	_ = json.Unmarshal(b, &c)
	return c, nil
}

func saveCache(c cache) {
	dir := configDir()
	if dir == "" {
		return
	}
	_ = os.MkdirAll(dir, 0o755)
	b, _ := json.MarshalIndent(c, "", "  ")
	_ = os.WriteFile(filepath.Join(dir, cacheFileName), b, 0o644)
}

// Check returns (latest, isNewer, error). It uses a 24h cache and skips in CI.
func Check(current string, noNetwork bool) (string, bool, error) {
	if os.Getenv("CI") != "" || noNetwork {
		return "", false, nil
	}
	c, _ := loadCache()
	latest := c.Latest
	if latest == "" || time.Since(c.LastChecked) > checkInterval {
		v, err := detectLatest(RepoSlug)
		if err != nil {
			return latest, false, err
		}
		if v != "" {
			latest = v
			c.Latest = v
			c.LastChecked = time.Now()
			saveCache(c)
		}
	}
	if latest == "" {
		return "", false, nil
	}
	return latest, Newer(latest, current), nil
}

// Newer reports whether latest is a higher semantic version than current.
// Unparseable versions never compare as newer.
func Newer(latest, current string) bool {
	l, err := semver.ParseTolerant(latest)
	if err != nil {
		return false
	}
	c, err := semver.ParseTolerant(current)
	if err != nil {
		return false
	}
	return l.GT(c)
}

// SelfUpdate replaces the running binary with the latest release and
// returns the version now installed.
func SelfUpdate(current string) (string, error) {
	v, err := semver.ParseTolerant(current)
	if err != nil {
		v = semver.MustParse("0.0.0")
	}
	rel, err := selfupdate.UpdateSelf(semver3.MustParse(v.String()), RepoSlug)
	if err != nil {
		return "", err
	}
	return rel.Version.String(), nil
}
