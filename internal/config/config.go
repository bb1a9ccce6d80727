// Package config provides configuration management.
// Values come from defaults, then an optional JSON file, then the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"service-basket/internal/errors"
	"service-basket/internal/logging"
)

// EnvPrefix prefixes every environment variable the config reads
const EnvPrefix = "BASKET_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog contains catalog configuration
	Catalog CatalogConfig `json:"catalog" envPrefix:"CATALOG_"`

	// Output contains output configuration
	Output OutputConfig `json:"output" envPrefix:"OUTPUT_"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig selects the catalog and pricing defaults
type CatalogConfig struct {
	// Path is a catalog file (.hcl, .yaml, .json); empty uses the built-in wedding catalog
	Path string `json:"path,omitempty" env:"PATH"`

	// DefaultYear is used when a request names no year; 0 means the latest configured year
	DefaultYear int `json:"default_year,omitempty" env:"DEFAULT_YEAR"`

	// AllowUnsupportedYears prices unknown years at zero instead of rejecting them
	AllowUnsupportedYears bool `json:"allow_unsupported_years" env:"ALLOW_UNSUPPORTED_YEARS"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" env:"FORMAT"`

	// NoColor disables ANSI colours
	NoColor bool `json:"no_color" env:"NO_COLOR"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" env:"ADDR"`

	// Metrics exposes /metrics when enabled
	Metrics bool `json:"metrics" env:"METRICS"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			Metrics:                true,
			ShutdownTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.service-basket.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".service-basket.json")
}

// Load loads configuration from a file, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, errors.Config("failed to parse config file "+path, err)
			}
		case !os.IsNotExist(err):
			return nil, errors.Config("failed to read config file "+path, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays BASKET_* environment variables, loading .env first if present
func ApplyEnv(cfg *Config) error {
	// .env is optional; real environments inject variables directly
	_ = godotenv.Load()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Config("failed to parse config from environment", err)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return errors.Config(fmt.Sprintf("invalid output format %q (cli, json)", c.Output.DefaultFormat), nil)
	}
	if c.Catalog.DefaultYear < 0 {
		return errors.Config(fmt.Sprintf("invalid default year %d", c.Catalog.DefaultYear), nil)
	}
	if c.Server.Addr == "" {
		return errors.Config("server address is required", nil)
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		return errors.Config("shutdown timeout must be non-negative", nil)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
