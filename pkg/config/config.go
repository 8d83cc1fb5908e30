// Package config loads fiberfind settings from a TOML file with
// environment variable overrides.
//
// The file lives at ~/.config/fiberfind/config.toml (XDG_CONFIG_HOME is
// honored). A missing file is fine: everything has a default or an
// environment fallback, and the Ravelry commands themselves complain when
// credentials are absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full fiberfind configuration.
type Config struct {
	Ravelry Ravelry `toml:"ravelry"`
	Geocode Geocode `toml:"geocode"`
	Cache   Cache   `toml:"cache"`
}

// Ravelry holds the API credentials (basic auth, from a Ravelry pro
// account's app settings).
type Ravelry struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Geocode holds the geocode.maps.co API key.
type Geocode struct {
	APIKey string `toml:"api_key"`
}

// Cache controls response caching. When RedisAddr is set the cache lives
// in redis instead of on disk.
type Cache struct {
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// Duration is a time.Duration that unmarshals from TOML strings like
// "24h" or "90m".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Environment variables overriding file values.
const (
	EnvRavelryUsername = "RAVELRY_USERNAME"
	EnvRavelryPassword = "RAVELRY_PASSWORD"
	EnvGeocodeKey      = "GEOCODE_API_KEY"
	EnvCacheDir        = "FIBERFIND_CACHE_DIR"
	EnvCacheTTL        = "FIBERFIND_CACHE_TTL"
	EnvRedisAddr       = "FIBERFIND_REDIS_ADDR"
)

// DefaultTTL is the cache lifetime when neither file nor environment set
// one.
const DefaultTTL = 24 * time.Hour

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, "fiberfind", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "fiberfind.toml")
	}
	return filepath.Join(home, ".config", "fiberfind", "config.toml")
}

// DefaultCacheDir returns the cache location, honoring XDG_CACHE_HOME.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "fiberfind")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fiberfind-cache")
	}
	return filepath.Join(home, ".cache", "fiberfind")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and fills defaults. A missing file yields a
// config built purely from environment and defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(DefaultTTL)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvRavelryUsername); v != "" {
		cfg.Ravelry.Username = v
	}
	if v := os.Getenv(EnvRavelryPassword); v != "" {
		cfg.Ravelry.Password = v
	}
	if v := os.Getenv(EnvGeocodeKey); v != "" {
		cfg.Geocode.APIKey = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = Duration(ttl)
		}
	}
}
