package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediavault.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./mediavault.db", cfg.Store.Path)
	assert.True(t, cfg.Import.Watch)
	assert.Len(t, cfg.Auth.SeedUsers, 2)

	// The default file was written and loads back cleanly.
	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Store.Path, reloaded.Store.Path)
	assert.Equal(t, cfg.Auth.SeedUsers, reloaded.Auth.SeedUsers)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediavault.toml")

	content := `
[store]
path = "/var/lib/mediavault/kv.db"

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/mediavault/kv.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Unspecified sections keep their defaults.
	assert.Equal(t, "./import", cfg.Import.Directory)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty store path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: "store path",
		},
		{
			name: "watching without directory",
			mutate: func(c *Config) {
				c.Import.Watch = true
				c.Import.Directory = ""
			},
			wantErr: "import directory",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name: "seed user without username",
			mutate: func(c *Config) {
				c.Auth.SeedUsers = []SeedUser{{Username: "", Role: "admin"}}
			},
			wantErr: "username cannot be empty",
		},
		{
			name: "seed user with unknown role",
			mutate: func(c *Config) {
				c.Auth.SeedUsers = []SeedUser{{Username: "eve", Role: "owner"}}
			},
			wantErr: "invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
