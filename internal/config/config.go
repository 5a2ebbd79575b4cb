// Package config loads the application configuration: process settings
// from environment variables and the domain configuration documents
// (graph, engine settings) from YAML files.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/nishasharma303/NitiVimarsh/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string

	// MaxConcurrent caps simultaneous simulation requests; further
	// requests wait for a slot.
	MaxConcurrent int64

	// SimulationTimeout bounds one simulation call end to end
	SimulationTimeout time.Duration
}

// DatabaseConfig holds run ledger connection settings. URL is
// optional: when empty the application falls back to the in-memory
// ledger.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds the domain configuration document locations. Empty
// paths select the built-in demo fixtures and engine defaults.
type PathConfig struct {
	GraphFile    string
	BaselineFile string
	SettingsFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		Paths:    loadPathConfig(),
	}
	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:              getEnvOrDefault("PORT", "8080"),
		MaxConcurrent:     int64(getEnvIntOrDefault("NITIVIMARSH_MAX_CONCURRENT", 4)),
		SimulationTimeout: getEnvDurationOrDefault("NITIVIMARSH_SIMULATION_TIMEOUT", 60*time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL: getEnvOrDefault("DATABASE_URL", ""),
	}
}

func loadPathConfig() PathConfig {
	return PathConfig{
		GraphFile:    getEnvOrDefault("NITIVIMARSH_GRAPH_FILE", ""),
		BaselineFile: getEnvOrDefault("NITIVIMARSH_BASELINE_FILE", ""),
		SettingsFile: getEnvOrDefault("NITIVIMARSH_SETTINGS_FILE", ""),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.MaxConcurrent < 1 {
		return errors.ConfigInvalid("NITIVIMARSH_MAX_CONCURRENT must be at least 1")
	}
	if config.Server.SimulationTimeout <= 0 {
		return errors.ConfigInvalid("NITIVIMARSH_SIMULATION_TIMEOUT must be positive")
	}
	return nil
}

// UsePostgres reports whether a run ledger database is configured
func (c *Config) UsePostgres() bool {
	return c.Database.URL != ""
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
