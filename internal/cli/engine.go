package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"mediavault/internal/albums"
	"mediavault/internal/auth"
	"mediavault/internal/config"
	"mediavault/internal/files"
	"mediavault/internal/store"
	"mediavault/pkg/models"
)

// Engine wires the persistence core together for the duration of one CLI
// invocation. Commands construct it on demand and close it when done; there
// is no process-wide singleton, which keeps the same wiring usable from
// tests with an injected backend.
type Engine struct {
	Config  *config.Config
	Files   *files.Repository
	Albums  *albums.Repository
	Auth    *auth.Service
	backend store.Backend
}

// newEngine loads configuration and opens the store.
func newEngine() (*Engine, error) {
	cfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logrus.New()
	applyLogging(logger, &cfg.Logging)

	backend, err := store.NewSQLiteBackend(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	adapter := store.NewAdapter(backend, logger)

	return &Engine{
		Config:  cfg,
		Files:   files.NewRepository(adapter),
		Albums:  albums.NewRepository(adapter),
		Auth:    auth.NewService(adapter, seedCredentials(cfg)),
		backend: backend,
	}, nil
}

// Close releases the underlying store.
func (e *Engine) Close() {
	if e.backend != nil {
		e.backend.Close()
	}
}

// CurrentUser returns the logged-in user, nil when nobody is logged in.
func (e *Engine) CurrentUser() *models.User {
	return e.Auth.CurrentUser()
}

// resolveConfigPath picks the config file location: flag first, then the
// MEDIAVAULT_CONFIG environment variable, then the working directory.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("MEDIAVAULT_CONFIG"); env != "" {
		return env
	}
	return "./mediavault.toml"
}

// applyLogging configures a logger from the logging config section.
func applyLogging(logger *logrus.Logger, cfg *config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.WithError(err).Warn("Failed to open log file, logging to stderr")
		} else {
			logger.SetOutput(f)
		}
	}
}

// seedCredentials converts configured seed accounts into credential records.
// An empty config section falls back to the built-in defaults.
func seedCredentials(cfg *config.Config) []auth.Credential {
	if len(cfg.Auth.SeedUsers) == 0 {
		return nil
	}

	seed := make([]auth.Credential, 0, len(cfg.Auth.SeedUsers))
	for _, u := range cfg.Auth.SeedUsers {
		id := u.ID
		if id == "" {
			id = u.Username
		}
		seed = append(seed, auth.Credential{
			ID:       id,
			Username: u.Username,
			Password: u.Password,
			Role:     models.Role(u.Role),
		})
	}
	return seed
}
