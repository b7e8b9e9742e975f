// Package config loads server and CLI settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pefman/citadel-calc/internal/game"
)

type Config struct {
	Listen      string      `yaml:"listen"`
	PublicDir   string      `yaml:"public_dir"`
	CatalogPath string      `yaml:"catalog_path"`
	LogLevel    string      `yaml:"log_level"`
	LogEncoding string      `yaml:"log_encoding"`
	Tuning      game.Tuning `yaml:"tuning"`
}

func Default() Config {
	return Config{
		Listen:      ":8080",
		PublicDir:   "public",
		LogLevel:    "info",
		LogEncoding: "console",
		Tuning:      game.DefaultTuning(),
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path falls back to $CITADEL_CONFIG; with neither set only defaults
// and environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CITADEL_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.Tuning.SiegeMultiplier <= 0 {
		return cfg, fmt.Errorf("tuning.siege_multiplier must be positive, got %v", cfg.Tuning.SiegeMultiplier)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
	c.CatalogPath = getenv("CITADEL_CATALOG", c.CatalogPath)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.PublicDir = getenv("CITADEL_PUBLIC", c.PublicDir)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
