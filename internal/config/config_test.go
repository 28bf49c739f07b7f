// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies defaults, overrides, and range validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("MOTO_ADMIN_API_URL", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIURL != "http://localhost:3000/api" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Timeout)
	}
	if cfg.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.PageSize)
	}
	if cfg.CompactWidth != 80 || cfg.WideWidth != 120 {
		t.Errorf("expected widths 80/120, got %d/%d", cfg.CompactWidth, cfg.WideWidth)
	}
	want := filepath.Join("/tmp/xdg", "moto-admin", "session.yaml")
	if cfg.SessionFile != want {
		t.Errorf("expected session file %s, got %s", want, cfg.SessionFile)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MOTO_ADMIN_API_URL", "https://shop.example.com/api/")
	t.Setenv("MOTO_ADMIN_RETRIES", "0")
	t.Setenv("MOTO_ADMIN_SESSION_REDIS", "redis://localhost:6379/0")
	t.Setenv("MOTO_ADMIN_PAGE_SIZE", "50")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://shop.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIURL)
	}
	if cfg.Retries != 0 {
		t.Errorf("expected 0 retries, got %d", cfg.Retries)
	}
	if cfg.SessionRedis != "redis://localhost:6379/0" {
		t.Errorf("expected redis URL, got %s", cfg.SessionRedis)
	}
	if cfg.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", cfg.PageSize)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad scheme", "MOTO_ADMIN_API_URL", "ftp://example.com", "MOTO_ADMIN_API_URL"},
		{"no host", "MOTO_ADMIN_API_URL", "http://", "MOTO_ADMIN_API_URL"},
		{"page size zero", "MOTO_ADMIN_PAGE_SIZE", "0", "MOTO_ADMIN_PAGE_SIZE"},
		{"too many retries", "MOTO_ADMIN_RETRIES", "11", "MOTO_ADMIN_RETRIES"},
		{"wide below compact", "MOTO_ADMIN_WIDE_WIDTH", "60", "MOTO_ADMIN_WIDE_WIDTH"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := FromEnv()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to mention %s, got %v", tc.want, err)
			}
		})
	}
}

func TestFromEnv_NonNumericFallsBack(t *testing.T) {
	t.Setenv("MOTO_ADMIN_TIMEOUT", "soon")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected fallback to 30s, got %s", cfg.Timeout)
	}
}

func TestFromEnv_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "moto-admin"), 0o700); err != nil {
		t.Fatal(err)
	}
	content := "api_url: https://file.example.com/api\npage_size: \"40\"\nretries: 0\ncache_ttl: 0\n"
	if err := os.WriteFile(filepath.Join(dir, "moto-admin", "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOTO_ADMIN_PAGE_SIZE", "25")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "https://file.example.com/api" {
		t.Errorf("expected API URL from file, got %s", cfg.APIURL)
	}
	if cfg.PageSize != 25 {
		t.Errorf("expected env to win over file, got %d", cfg.PageSize)
	}
	if cfg.Retries != 0 {
		t.Errorf("expected explicit zero retries from file, got %d", cfg.Retries)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("expected caching disabled from file, got %s", cfg.CacheTTL)
	}
}

func TestFromEnv_ConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("page_sise: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MOTO_ADMIN_CONFIG", path)

	_, err := FromEnv()
	if err == nil || !strings.Contains(err.Error(), "page_sise") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}
