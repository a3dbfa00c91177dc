package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 30*time.Second, c.API.Timeout)
	assert.Equal(t, 2, c.API.RetryLimit)
	assert.Equal(t, "oneoff_cache_", c.Cache.Prefix)
	assert.Equal(t, 30*time.Second, c.Cache.JobsTTL)
	assert.Equal(t, 30*time.Minute, c.Cache.ReferenceTTL)
	assert.Equal(t, "oneoff_linux_amd64.tar.gz", c.Release.AssetName)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvCacheDir, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.True(t, filepath.IsAbs(cfg.Cache.Dir))
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := "api:\n  base_url: http://example.test/api\n  timeout: 5s\ncache:\n  jobs_ttl: 10s\n  dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvAPIURL, "http://override.test/api")
	t.Setenv(EnvToken, "  tok  ")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override.test/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Cache.JobsTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ReferenceTTL, "unset values keep defaults")
	assert.Equal(t, "tok", cfg.Release.Token)
	assert.Equal(t, filepath.Join(dir, "storage.json"), cfg.StorePath())
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := Default()
	cfg.API.BaseURL = "http://saved.test/api"
	cfg.Cache.Dir = t.TempDir()
	require.NoError(t, Save(&cfg, path))

	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvCacheDir, "")
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.test/api", got.API.BaseURL)
}
