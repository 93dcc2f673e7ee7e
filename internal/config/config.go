package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Store   StoreConfig   `toml:"store"`
	Import  ImportConfig  `toml:"import"`
	Logging LoggingConfig `toml:"logging"`
	Auth    AuthConfig    `toml:"auth"`
}

// StoreConfig locates the key-value store backing all persisted state.
type StoreConfig struct {
	Path string `toml:"path"`
}

// ImportConfig controls the watched import directory that feeds uploads.
type ImportConfig struct {
	Directory     string `toml:"directory"`
	Watch         bool   `toml:"watch"`
	ScanOnStartup bool   `toml:"scan_on_startup"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// AuthConfig carries the seeded account set. Accounts listed here replace
// the built-in defaults; they are materialized into the store on first login.
type AuthConfig struct {
	SeedUsers []SeedUser `toml:"seed_users"`
}

// SeedUser is one configured account.
type SeedUser struct {
	ID       string `toml:"id"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Role     string `toml:"role"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "./mediavault.db",
		},
		Import: ImportConfig{
			Directory:     "./import",
			Watch:         true,
			ScanOnStartup: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
		Auth: AuthConfig{
			SeedUsers: []SeedUser{
				{ID: "admin", Username: "admin", Password: "admin123", Role: "admin"},
				{ID: "user", Username: "user", Password: "user123", Role: "user"},
			},
		},
	}
}

// LoadConfig loads configuration from a TOML file, creating a default file
// when none exists yet.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, create it with defaults
		if err := cfg.SaveToFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", err)
		}
		fmt.Printf("Created default configuration file at: %s\n", configPath)
		return cfg, nil
	}

	// Load from file
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	header := `# Mediavault Configuration
# This file contains all configuration options for the mediavault asset manager.
# Edit the values below to customize your setup.

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	// Encode configuration to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path cannot be empty")
	}

	if c.Import.Watch && c.Import.Directory == "" {
		return fmt.Errorf("import directory cannot be empty when watching is enabled")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	validRoles := map[string]bool{
		"admin": true, "user": true, "guest": true,
	}
	for _, u := range c.Auth.SeedUsers {
		if u.Username == "" {
			return fmt.Errorf("seed user username cannot be empty")
		}
		if !validRoles[u.Role] {
			return fmt.Errorf("invalid role for seed user %s: %s (must be admin, user, or guest)", u.Username, u.Role)
		}
	}

	return nil
}
