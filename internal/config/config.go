package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	API    APIConfig    `json:"api"`
	Search SearchConfig `json:"search"`
	UI     UIConfig     `json:"ui"`
}

// APIConfig holds jobs-endpoint settings
type APIConfig struct {
	BaseURL        string `json:"base_url"` // empty means the built-in demo backend
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SearchConfig holds search and cache tuning
type SearchConfig struct {
	DebounceMs      int `json:"debounce_ms"`
	PageSize        int `json:"page_size"`
	DetailCacheSize int `json:"detail_cache_size"`
	DetailStaleSecs int `json:"detail_stale_seconds"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	DefaultSort string `json:"default_sort"` // "relevant" or "recent"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: 10,
		},
		Search: SearchConfig{
			DebounceMs:      250,
			PageSize:        7,
			DetailCacheSize: 256,
			DetailStaleSecs: 60,
		},
		UI: UIConfig{
			Theme:       "dark",
			DefaultSort: "relevant",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jobdeck", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillZeroes()
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("JOBDECK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
}

// fillZeroes backfills defaults for fields missing from an older config file
func (c *Config) fillZeroes() {
	def := DefaultConfig()
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = def.Search.DebounceMs
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = def.Search.PageSize
	}
	if c.Search.DetailCacheSize <= 0 {
		c.Search.DetailCacheSize = def.Search.DetailCacheSize
	}
	if c.Search.DetailStaleSecs <= 0 {
		c.Search.DetailStaleSecs = def.Search.DetailStaleSecs
	}
	if c.UI.DefaultSort == "" {
		c.UI.DefaultSort = def.UI.DefaultSort
	}
}
