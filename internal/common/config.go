// Package common provides shared utilities for the advisor gateway
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the advisor gateway
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Clients     ClientsConfig  `toml:"clients"`
	Throttle    ThrottleConfig `toml:"throttle"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds upstream client configurations
type ClientsConfig struct {
	MLEngine  MLEngineConfig  `toml:"mlengine"`
	Portfolio PortfolioConfig `toml:"portfolio"`
	Gemini    GeminiConfig    `toml:"gemini"`
}

// MLEngineConfig holds prediction service configuration
type MLEngineConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *MLEngineConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// PortfolioConfig holds core portfolio service configuration
type PortfolioConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *PortfolioConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration. An empty or "mock-key" APIKey
// switches the narrative generator to its mock tier.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// HasCredential returns true when a usable Gemini credential is configured.
func (c *GeminiConfig) HasCredential() bool {
	return c.APIKey != "" && c.APIKey != "mock-key"
}

// ThrottleConfig holds the per-caller request budget for advisory routes.
type ThrottleConfig struct {
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

// GetWindow parses and returns the throttle window duration
func (c *ThrottleConfig) GetWindow() time.Duration {
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return 15 * time.Minute
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
			Port: 5000,
		},
		Clients: ClientsConfig{
			MLEngine: MLEngineConfig{
				BaseURL:   "http://localhost:8000",
				RateLimit: 10,
				Timeout:   "10s",
			},
			Portfolio: PortfolioConfig{
				BaseURL:   "http://localhost:8080",
				RateLimit: 10,
				Timeout:   "10s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-1.5-flash",
			},
		},
		Throttle: ThrottleConfig{
			Requests: 20,
			Window:   "15m",
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

// applyEnvOverrides applies environment variable overrides to config.
// ML_SERVICE_URL, CORE_SERVICE_URL, GEMINI_API_KEY and PORT keep the names
// used by the services this gateway was deployed alongside.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ADVISOR_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("ADVISOR_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("ADVISOR_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	} else if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("ADVISOR_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("ML_SERVICE_URL"); url != "" {
		config.Clients.MLEngine.BaseURL = url
	}

	if url := os.Getenv("CORE_SERVICE_URL"); url != "" {
		config.Clients.Portfolio.BaseURL = url
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}

	if model := os.Getenv("ADVISOR_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}

	if v := os.Getenv("ADVISOR_THROTTLE_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Throttle.Requests = n
		}
	}
	if v := os.Getenv("ADVISOR_THROTTLE_WINDOW"); v != "" {
		config.Throttle.Window = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
