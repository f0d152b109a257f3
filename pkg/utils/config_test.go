package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STREAMLINKS_CONFIG", "")
	t.Setenv("TMDB_API_KEY", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.Server.HTTPAddr)
	}
	if cfg.TMDB.Enabled() {
		t.Fatal("provider must be disabled without a key")
	}
	if cfg.Live.Debounce() != 300*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.Live.Debounce())
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[server]
http_addr = ":7000"

[tmdb]
api_key = "from-file"
language = "fr-FR"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("STREAMLINKS_DEBOUNCE_MS", "150")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.HTTPAddr != ":7000" {
		t.Fatalf("file value not applied: %q", cfg.Server.HTTPAddr)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Fatalf("env must override file, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Language != "fr-FR" {
		t.Fatalf("unexpected language %q", cfg.TMDB.Language)
	}
	if cfg.TMDB.BaseURL == "" {
		t.Fatal("defaults must survive a partial file")
	}
	if cfg.Live.Debounce() != 150*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.Live.Debounce())
	}
}

func TestLoadConfigFileDurations(t *testing.T) {
	t.Setenv("STREAMLINKS_CONFIG", "")
	t.Setenv("STREAMLINKS_DEBOUNCE_MS", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[tmdb]
timeout_seconds = 5

[live]
debounce_ms = 150
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.TMDB.Timeout() != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.TMDB.Timeout())
	}
	if cfg.Live.Debounce() != 150*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.Live.Debounce())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
