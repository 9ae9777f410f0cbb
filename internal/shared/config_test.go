package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "spintrack.db" {
			t.Errorf("expected database path spintrack.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://localhost:5000" {
			t.Errorf("expected base URL http://localhost:5000, got %s", config.API.BaseURL)
		}

		if config.Search.DebounceMS != 150 {
			t.Errorf("expected debounce 150ms, got %d", config.Search.DebounceMS)
		}

		if config.Search.RateLimit != 5.0 {
			t.Errorf("expected rate limit 5.0, got %v", config.Search.RateLimit)
		}
	})

	t.Run("DebounceInterval and CacheTTL", func(t *testing.T) {
		config := SearchConfig{DebounceMS: 150, CacheTTLMins: 15}

		if config.DebounceInterval() != 150*time.Millisecond {
			t.Errorf("expected 150ms debounce, got %v", config.DebounceInterval())
		}
		if config.CacheTTL() != 15*time.Minute {
			t.Errorf("expected 15m TTL, got %v", config.CacheTTL())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://airplay.internal:8000"
public_url = "https://airplay.example.com"

[search]
debounce_ms = 300
cache_ttl_mins = 5
rate_limit = 2.5

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://airplay.internal:8000" {
			t.Errorf("expected custom base URL, got %s", config.API.BaseURL)
		}

		if config.Search.DebounceMS != 300 {
			t.Errorf("expected debounce 300ms, got %d", config.Search.DebounceMS)
		}

		if config.Search.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Search.RateLimit)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
