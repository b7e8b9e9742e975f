package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "CITADEL_CONFIG", "CITADEL_CATALOG", "LOG_LEVEL", "CITADEL_PUBLIC"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if cfg.Tuning.MonsterHunterDiscount != 5 || cfg.Tuning.SiegeMultiplier != 20 {
		t.Errorf("tuning defaults = %+v", cfg.Tuning)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "citadel.yaml")
	body := `listen: ":9000"
log_level: debug
tuning:
  first_strike_margin: 10
  wall_margin: 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9000" || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Tuning.FirstStrikeMargin != 10 || cfg.Tuning.WallMargin != 2 {
		t.Errorf("tuning = %+v", cfg.Tuning)
	}
	// unset keys keep their defaults
	if cfg.Tuning.SiegeMultiplier != 20 || cfg.PublicDir != "public" {
		t.Errorf("defaults lost: %+v", cfg)
	}

	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CITADEL_CATALOG", "/tmp/catalog.json")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7070" || cfg.LogLevel != "warn" || cfg.CatalogPath != "/tmp/catalog.json" {
		t.Errorf("env overrides = %+v", cfg)
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("public_dir: web\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CITADEL_CONFIG", path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PublicDir != "web" {
		t.Errorf("PublicDir = %q, want web", cfg.PublicDir)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	zero := filepath.Join(dir, "zero.yaml")
	_ = os.WriteFile(bad, []byte("listen: [unterminated\n"), 0o644)
	_ = os.WriteFile(zero, []byte("tuning:\n  siege_multiplier: 0\n"), 0o644)
	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad, zero} {
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) succeeded, want error", filepath.Base(path))
		}
	}
}
