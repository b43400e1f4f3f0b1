package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration. Sensitive or
// deployment-specific values can be overridden through environment
// variables after load.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		// DetailWSURL is the per-symbol stream; %s is the short code.
		DetailWSURL string `yaml:"detail_ws_url"`
		// HeatmapWSURL is the shared stream the heatmap view subscribes on.
		HeatmapWSURL string `yaml:"heatmap_ws_url"`
		// CatalogURL serves the symbol catalog JSON.
		CatalogURL string `yaml:"catalog_url"`
		// Symbols tracked by the heatmap view.
		Symbols []string `yaml:"symbols"`
	} `yaml:"feed"`

	UI struct {
		FlashCooldownMS int `yaml:"flash_cooldown_ms"`
		TapeDepth       int `yaml:"tape_depth"`
		QueryLimit      int `yaml:"query_limit"`
	} `yaml:"ui"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if !isWSURL(c.Feed.DetailWSURL) {
		return fmt.Errorf("invalid detail WS URL: %s", c.Feed.DetailWSURL)
	}
	if !strings.Contains(c.Feed.DetailWSURL, "%s") {
		return fmt.Errorf("detail WS URL must contain a %%s code placeholder: %s", c.Feed.DetailWSURL)
	}
	if !isWSURL(c.Feed.HeatmapWSURL) {
		return fmt.Errorf("invalid heatmap WS URL: %s", c.Feed.HeatmapWSURL)
	}
	if c.UI.FlashCooldownMS < 0 {
		return fmt.Errorf("flash cooldown must not be negative")
	}
	if c.UI.TapeDepth < 0 {
		return fmt.Errorf("tape depth must not be negative")
	}
	return nil
}

func isWSURL(s string) bool {
	return strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}

// overrideWithEnv applies environment variables over the file values.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("STOCKDASH_DETAIL_WS_URL"); v != "" {
		cfg.Feed.DetailWSURL = v
	}
	if v := os.Getenv("STOCKDASH_HEATMAP_WS_URL"); v != "" {
		cfg.Feed.HeatmapWSURL = v
	}
	if v := os.Getenv("STOCKDASH_CATALOG_URL"); v != "" {
		cfg.Feed.CatalogURL = v
	}
	if v := os.Getenv("STOCKDASH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
