package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Search   SearchConfig   `toml:"search"`
	Database DatabaseConfig `toml:"database"`
}

// APIConfig contains connection settings for the airplay admin backend.
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	PublicURL string `toml:"public_url"`
}

// SearchConfig tunes the typeahead and the search client.
type SearchConfig struct {
	DebounceMS   int     `toml:"debounce_ms"`
	CacheTTLMins int     `toml:"cache_ttl_mins"`
	RateLimit    float64 `toml:"rate_limit"`
}

// DebounceInterval returns the configured debounce quiet period.
func (s SearchConfig) DebounceInterval() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// CacheTTL returns the configured suggestion cache freshness window.
func (s SearchConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLMins) * time.Minute
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
