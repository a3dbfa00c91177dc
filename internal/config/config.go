package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meysam81/oneoffctl/internal/utils"
	"github.com/meysam81/oneoffctl/internal/utils/pathutils"
)

const (
	AppName    = "oneoff"
	configFile = "config.yml"

	EnvAPIURL   = "ONEOFF_API_URL"
	EnvCacheDir = "ONEOFF_CACHE_DIR"
	EnvToken    = "GITHUB_TOKEN"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Release ReleaseConfig `yaml:"release"`
}

type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryLimit int           `yaml:"retry_limit"`
	UserAgent  string        `yaml:"user_agent,omitempty"`
}

type CacheConfig struct {
	Dir          string        `yaml:"dir"`
	Prefix       string        `yaml:"prefix"`
	DefaultTTL   time.Duration `yaml:"default_ttl"`
	JobsTTL      time.Duration `yaml:"jobs_ttl"`
	ReferenceTTL time.Duration `yaml:"reference_ttl"`
	MaxBytes     int64         `yaml:"max_bytes"`
}

type ReleaseConfig struct {
	Owner      string `yaml:"owner"`
	Repo       string `yaml:"repo"`
	AssetName  string `yaml:"asset_name"`
	BinaryName string `yaml:"binary_name"`
	// APIBaseURL overrides the GitHub API endpoint (GitHub Enterprise, tests).
	APIBaseURL string `yaml:"api_base_url,omitempty"`
	Token      string `yaml:"-"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:    "http://localhost:8080/api",
			Timeout:    30 * time.Second,
			RetryLimit: 2,
		},
		Cache: CacheConfig{
			Prefix:       "oneoff_cache_",
			DefaultTTL:   5 * time.Minute,
			JobsTTL:      30 * time.Second,
			ReferenceTTL: 30 * time.Minute,
			MaxBytes:     5 << 20,
		},
		Release: ReleaseConfig{
			Owner:      "meysam81",
			Repo:       "oneoff",
			AssetName:  "oneoff_linux_amd64.tar.gz",
			BinaryName: "oneoff",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/oneoff/config.yml.
func DefaultPath() (string, error) {
	dir, err := pathutils.ConfigDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads path (or the default location when empty) over Default() and
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	path, err := pathutils.ToAbsolutePath(path)
	if err != nil {
		return nil, err
	}

	ok, err := utils.FileExists(path)
	if err != nil {
		return nil, err
	}
	switch {
	case ok:
		if err := utils.ReadYAML(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case explicit:
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg.applyEnv()
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	return utils.WriteYAML(path, cfg, 0o644)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCacheDir)); v != "" {
		c.Cache.Dir = v
	}
	c.Release.Token = strings.TrimSpace(os.Getenv(EnvToken))
}

func (c *Config) finalize() error {
	def := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = def.API.Timeout
	}
	if c.API.RetryLimit < 0 {
		c.API.RetryLimit = 0
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = def.Cache.Prefix
	}
	if c.Cache.DefaultTTL <= 0 {
		c.Cache.DefaultTTL = def.Cache.DefaultTTL
	}
	if c.Cache.JobsTTL <= 0 {
		c.Cache.JobsTTL = def.Cache.JobsTTL
	}
	if c.Cache.ReferenceTTL <= 0 {
		c.Cache.ReferenceTTL = def.Cache.ReferenceTTL
	}

	if c.Cache.Dir == "" {
		dir, err := pathutils.StateDir(AppName)
		if err != nil {
			return err
		}
		c.Cache.Dir = dir
	}
	dir, err := pathutils.ToAbsolutePath(c.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	c.Cache.Dir = dir

	return nil
}

// StorePath is the file backing the persisted cache.
func (c *Config) StorePath() string {
	return filepath.Join(c.Cache.Dir, "storage.json")
}
