package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is read once at process start and passed down by value.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	TMDB    TMDBConfig    `toml:"tmdb"`
	Log     LogConfig     `toml:"log"`
	Live    LiveConfig    `toml:"live"`
}

type ServerConfig struct {
	HTTPAddr string `toml:"http_addr"`
	GRPCAddr string `toml:"grpc_addr"`
}

type CatalogConfig struct {
	// Path is a TOML or CSV catalog file. Empty means the embedded catalog.
	Path string `toml:"path"`
	// DBPath, when set, loads the catalog from a SQLite store instead.
	DBPath string `toml:"db_path"`
}

type TMDBConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// RequestsPerSecond throttles outgoing provider calls.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

func (c TMDBConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Enabled reports whether a provider credential is configured.
func (c TMDBConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type LogConfig struct {
	Level string `toml:"level"`
}

type LiveConfig struct {
	DebounceMS     int `toml:"debounce_ms"`
	MaxSuggestions int `toml:"max_suggestions"`
}

func (c LiveConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			HTTPAddr: ":8080",
			GRPCAddr: ":9090",
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "en-US",
			TimeoutSeconds:    10,
			RequestsPerSecond: 20,
		},
		Log: LogConfig{Level: "info"},
		Live: LiveConfig{
			DebounceMS:     300,
			MaxSuggestions: 8,
		},
	}
}

// LoadConfig layers defaults, an optional TOML file and environment
// overrides, in that order. An empty path falls back to STREAMLINKS_CONFIG.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("STREAMLINKS_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.HTTPAddr, "STREAMLINKS_HTTP_ADDR")
	setString(&cfg.Server.GRPCAddr, "STREAMLINKS_GRPC_ADDR")
	setString(&cfg.Catalog.Path, "STREAMLINKS_CATALOG")
	setString(&cfg.Catalog.DBPath, "STREAMLINKS_CATALOG_DB")
	setString(&cfg.Log.Level, "STREAMLINKS_LOG_LEVEL")

	setString(&cfg.TMDB.APIKey, "TMDB_API_KEY")
	setString(&cfg.TMDB.BaseURL, "TMDB_BASE_URL")
	setString(&cfg.TMDB.Language, "TMDB_LANGUAGE")

	if v := strings.TrimSpace(os.Getenv("STREAMLINKS_DEBOUNCE_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Live.DebounceMS = ms
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
