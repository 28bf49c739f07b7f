// ABOUTME: Configuration loader for the moto-admin console
// ABOUTME: Layers defaults, an optional YAML file, .env, and environment variables

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const appDirName = "moto-admin"

type Config struct {
	// Backend
	APIURL  string
	Timeout time.Duration
	Retries int // extra attempts for GETs that never reached the server

	// Session storage
	SessionFile   string
	SessionRedis  string // redis:// URL, empty = file store
	WatchInterval time.Duration

	// Presentation
	PageSize     int
	CompactWidth int // below this width tables render as cards
	WideWidth    int // below this width medium-hidden columns are dropped

	// Reference data cache
	CacheTTL time.Duration

	// Logging
	LogFile string
}

// Load reads an optional .env file and then the environment.
// A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// fileSettings mirrors the optional config.yaml. Zero values defer to defaults.
type fileSettings struct {
	APIURL        string `mapstructure:"api_url"`
	Timeout       int    `mapstructure:"timeout"`
	Retries       *int   `mapstructure:"retries"`
	SessionFile   string `mapstructure:"session_file"`
	SessionRedis  string `mapstructure:"session_redis"`
	WatchInterval int    `mapstructure:"watch_interval"`
	PageSize      int    `mapstructure:"page_size"`
	CompactWidth  int    `mapstructure:"compact_width"`
	WideWidth     int    `mapstructure:"wide_width"`
	CacheTTL      *int   `mapstructure:"cache_ttl"`
	LogFile       string `mapstructure:"log_file"`
}

// FromEnv builds the configuration from the config file and environment variables.
// Environment variables win over the file.
func FromEnv() (*Config, error) {
	dir := DefaultDir()

	fs, err := readFile(FilePath())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:        strings.TrimRight(getEnv("MOTO_ADMIN_API_URL", or(fs.APIURL, "http://localhost:3000/api")), "/"),
		Timeout:       time.Duration(getEnvInt("MOTO_ADMIN_TIMEOUT", orInt(fs.Timeout, 30))) * time.Second,
		Retries:       getEnvInt("MOTO_ADMIN_RETRIES", orPtr(fs.Retries, 2)),
		SessionFile:   getEnv("MOTO_ADMIN_SESSION_FILE", or(fs.SessionFile, filepath.Join(dir, "session.yaml"))),
		SessionRedis:  getEnv("MOTO_ADMIN_SESSION_REDIS", fs.SessionRedis),
		WatchInterval: time.Duration(getEnvInt("MOTO_ADMIN_WATCH_INTERVAL", orInt(fs.WatchInterval, 2))) * time.Second,
		PageSize:      getEnvInt("MOTO_ADMIN_PAGE_SIZE", orInt(fs.PageSize, 20)),
		CompactWidth:  getEnvInt("MOTO_ADMIN_COMPACT_WIDTH", orInt(fs.CompactWidth, 80)),
		WideWidth:     getEnvInt("MOTO_ADMIN_WIDE_WIDTH", orInt(fs.WideWidth, 120)),
		CacheTTL:      time.Duration(getEnvInt("MOTO_ADMIN_CACHE_TTL", orPtr(fs.CacheTTL, 60))) * time.Second,
		LogFile:       getEnv("MOTO_ADMIN_LOG_FILE", or(fs.LogFile, filepath.Join(dir, "debug.log"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the API URL shape.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("MOTO_ADMIN_API_URL must be an http(s) URL, got %q", c.APIURL)
	}

	for _, v := range []struct {
		name     string
		value    int
		min, max int
	}{
		{"MOTO_ADMIN_TIMEOUT", int(c.Timeout / time.Second), 1, 600},
		{"MOTO_ADMIN_RETRIES", c.Retries, 0, 10},
		{"MOTO_ADMIN_WATCH_INTERVAL", int(c.WatchInterval / time.Second), 1, 3600},
		{"MOTO_ADMIN_PAGE_SIZE", c.PageSize, 1, 500},
		{"MOTO_ADMIN_COMPACT_WIDTH", c.CompactWidth, 20, 1000},
		{"MOTO_ADMIN_WIDE_WIDTH", c.WideWidth, 20, 1000},
		{"MOTO_ADMIN_CACHE_TTL", int(c.CacheTTL / time.Second), 0, 86400},
	} {
		if v.value < v.min || v.value > v.max {
			return fmt.Errorf("%s must be between %d and %d, got %d", v.name, v.min, v.max, v.value)
		}
	}

	if c.WideWidth < c.CompactWidth {
		return fmt.Errorf("MOTO_ADMIN_WIDE_WIDTH (%d) must not be below MOTO_ADMIN_COMPACT_WIDTH (%d)", c.WideWidth, c.CompactWidth)
	}
	return nil
}

// FilePath returns the config file location, overridable with MOTO_ADMIN_CONFIG
func FilePath() string {
	return getEnv("MOTO_ADMIN_CONFIG", filepath.Join(DefaultDir(), "config.yaml"))
}

// readFile loads the YAML config file. A missing file yields empty settings.
func readFile(path string) (fileSettings, error) {
	var fs fileSettings
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return fs, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fs, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fs,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fs, err
	}
	if err := dec.Decode(raw); err != nil {
		return fs, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return fs, nil
}

// DefaultDir returns the per-user config directory following XDG conventions
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return appDirName
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}

func orPtr(value *int, fallback int) int {
	if value != nil {
		return *value
	}
	return fallback
}
