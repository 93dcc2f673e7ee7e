package store

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Adapter serializes values to JSON blobs in a Backend. Persistence failures
// never escape the adapter: a failed save is logged and swallowed (the write
// silently does not happen) and a failed or corrupt load behaves exactly like
// an absent key, so a storage problem can never take the caller down.
type Adapter struct {
	backend Backend
	logger  *logrus.Logger
}

// NewAdapter wraps a backend. The logger may be nil, in which case a default
// JSON-formatted logger is created.
func NewAdapter(backend Backend, logger *logrus.Logger) *Adapter {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Adapter{
		backend: backend,
		logger:  logger,
	}
}

// Save serializes value and stores it under key. Serialization and storage
// failures are logged and swallowed.
func (a *Adapter) Save(key string, value interface{}) {
	blob, err := json.Marshal(value)
	if err != nil {
		a.logger.WithError(err).WithField("key", key).Error("Failed to serialize value")
		return
	}

	if err := a.backend.Set(key, string(blob)); err != nil {
		a.logger.WithError(err).WithField("key", key).Error("Failed to save value")
	}
}

// Load deserializes the value stored under key into dst and reports whether
// anything was loaded. An absent key, a backend failure, or a corrupt blob
// all leave dst untouched and return false; the caller substitutes its empty
// default either way.
func (a *Adapter) Load(key string, dst interface{}) bool {
	blob, exists, err := a.backend.Get(key)
	if err != nil {
		a.logger.WithError(err).WithField("key", key).Error("Failed to load value")
		return false
	}
	if !exists {
		return false
	}

	if err := json.Unmarshal([]byte(blob), dst); err != nil {
		a.logger.WithError(err).WithField("key", key).Error("Failed to decode stored value, treating as absent")
		return false
	}
	return true
}

// Remove deletes the blob stored under key. Failures are logged and swallowed.
func (a *Adapter) Remove(key string) {
	if err := a.backend.Delete(key); err != nil {
		a.logger.WithError(err).WithField("key", key).Error("Failed to remove value")
	}
}
