// Package common provides shared utilities for Finsight
package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/finsight/internal/interfaces"
)

// Config holds all configuration for Finsight
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection details plus the on-disk asset areas.
type StorageConfig struct {
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`

	// StaticPath is the public static asset root. Charts are written to
	// StaticPath/charts and referenced by reports as "charts/<file>".
	StaticPath string `toml:"static_path"`

	// UploadPath holds uploaded documents before analysis.
	UploadPath string `toml:"upload_path"`
}

// ChartPath returns the directory chart images are written to.
func (c *StorageConfig) ChartPath() string {
	return filepath.Join(c.StaticPath, "charts")
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini       GeminiConfig       `toml:"gemini"`
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
	Yahoo        YahooConfig        `toml:"yahoo"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the per-call timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// YahooConfig holds Yahoo Finance client configuration
type YahooConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:    "ws://localhost:8000/rpc",
			Username:   "root",
			Password:   "root",
			Namespace:  "finsight",
			Database:   "finsight",
			StaticPath: "static",
			UploadPath: "uploads",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:   "gemini-2.5-flash",
				Timeout: "120s",
			},
			AlphaVantage: AlphaVantageConfig{
				BaseURL:   "https://www.alphavantage.co",
				RateLimit: 5,
				Timeout:   "10s",
			},
			Yahoo: YahooConfig{
				BaseURL: "https://query2.finance.yahoo.com",
				Timeout: "10s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FINSIGHT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FINSIGHT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if addr := os.Getenv("FINSIGHT_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	if path := os.Getenv("FINSIGHT_STATIC_PATH"); path != "" {
		config.Storage.StaticPath = path
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment, system KV store, or config fallback
func ResolveAPIKey(ctx context.Context, store interfaces.SystemKVStore, name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key":       {"GEMINI_API_KEY", "FINSIGHT_GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"alphavantage_api_key": {"ALPHA_VANTAGE_KEY", "FINSIGHT_ALPHAVANTAGE_API_KEY"},
	}

	// Environment variables take highest priority
	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	// System KV (set at runtime)
	if store != nil {
		apiKey, err := store.GetSystemKV(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	// Config file fallback
	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or store", name)
}
