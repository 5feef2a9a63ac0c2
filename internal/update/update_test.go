package update

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDetect(t *testing.T, version string, err error) *int {
	t.Helper()
	calls := 0
	orig := detectLatest
	detectLatest = func(string) (string, error) {
		calls++
		return version, err
	}
	t.Cleanup(func() { detectLatest = orig })
	return &calls
}

func TestCheck_NoNetworkOrCI(t *testing.T) {
	calls := stubDetect(t, "9.9.9", nil)
	t.Setenv("CI", "1")
	latest, newer, err := Check("1.0.0", false)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.False(t, newer)

	t.Setenv("CI", "")
	latest, _, err = Check("1.0.0", true)
	require.NoError(t, err)
	assert.Empty(t, latest)
	assert.Zero(t, *calls)
}

func TestNewer(t *testing.T) {
	assert.True(t, Newer("v1.3.0", "1.2.9"))
	assert.False(t, Newer("1.2.3", "v1.2.3"))
	assert.False(t, Newer("1.2.0", "1.2.1"))
	assert.False(t, Newer("garbage", "1.0.0"))
}

func TestCheck_UsesCacheWhenFresh(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CI", "")
	calls := stubDetect(t, "9.9.9", nil)

	path := filepath.Join(dir, "wordmask", cacheFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	b, _ := json.Marshal(cache{LastChecked: time.Now(), Latest: "1.2.3"})
	require.NoError(t, os.WriteFile(path, b, 0o644))

	latest, newer, err := Check("1.2.2", false)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", latest)
	assert.True(t, newer)
	assert.Zero(t, *calls)
}

func TestCheck_RefreshesStaleCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CI", "")
	calls := stubDetect(t, "2.0.0", nil)

	latest, newer, err := Check("1.0.0", false)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", latest)
	assert.True(t, newer)
	assert.Equal(t, 1, *calls)

	c, err := loadCache()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", c.Latest)
}

func TestCheck_DetectError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CI", "")
	stubDetect(t, "", errors.New("rate limited"))

	_, newer, err := Check("1.0.0", false)
	assert.Error(t, err)
	assert.False(t, newer)
}
