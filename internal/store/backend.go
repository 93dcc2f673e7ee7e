package store

import "sync"

// Well-known keys for the persisted collections. Each key holds one
// independently serialized JSON blob; there is no transactional guarantee
// across keys.
const (
	KeyFiles  = "files"
	KeyAlbums = "albums"
	KeyAuth   = "auth"
	KeyUsers  = "users"
)

// Backend is a string-keyed store for serialized blobs. Get reports whether
// the key was present; an absent key is not an error.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// MemoryBackend keeps values in process memory. It is the backend of choice
// for tests and safe for concurrent use.
type MemoryBackend struct {
	items map[string]string
	mutex sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		items: make(map[string]string),
	}
}

// Get retrieves a value by key.
func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, exists := m.items[key]
	return value, exists, nil
}

// Set stores a value under key.
func (m *MemoryBackend) Set(key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.items[key] = value
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op.
func (m *MemoryBackend) Delete(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.items, key)
	return nil
}

// Close releases the backend. For memory backends this is a no-op.
func (m *MemoryBackend) Close() error {
	return nil
}
