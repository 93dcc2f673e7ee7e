package files

import (
	"sync"

	"github.com/sirupsen/logrus"

	"mediavault/internal/store"
	"mediavault/pkg/models"
)

// Repository manages the persisted file collection. Every mutation
// round-trips the entire collection through the store adapter (load-all,
// mutate, save-all); the mutex serializes mutations from concurrent callers
// so an in-flight batch ingest cannot silently drop a concurrent edit.
type Repository struct {
	store  *store.Adapter
	logger *logrus.Logger
	mutex  sync.Mutex
}

// NewRepository creates a file repository over the given store adapter.
func NewRepository(adapter *store.Adapter) *Repository {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Repository{
		store:  adapter,
		logger: logger,
	}
}

// List returns the current persisted collection, or an empty slice when the
// key is absent or the stored blob is corrupt.
func (r *Repository) List() []models.StoredFile {
	var files []models.StoredFile
	r.store.Load(store.KeyFiles, &files)
	if files == nil {
		files = []models.StoredFile{}
	}
	return files
}

// Add appends a file to the persisted collection.
func (r *Repository) Add(file models.StoredFile) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	files := r.List()
	files = append(files, file)
	r.store.Save(store.KeyFiles, files)
}

// Delete removes the file with the given id. Deleting an id that is not
// present is a no-op. Albums referencing the id are deliberately left
// untouched; readers tolerate the dangling reference.
func (r *Repository) Delete(id string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	files := r.List()
	kept := files[:0]
	for _, f := range files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	r.store.Save(store.KeyFiles, kept)
}

// Clear removes the entire file collection.
func (r *Repository) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.store.Remove(store.KeyFiles)
}

// ToMediaFile projects a stored record into its display form. URL carries
// the exact payload string held in Data.
func ToMediaFile(f models.StoredFile) models.MediaFile {
	return models.MediaFile{
		ID:         f.ID,
		Name:       f.Name,
		Type:       f.Type,
		URL:        f.Data,
		Size:       f.Size,
		UploadDate: f.UploadDate,
	}
}

// ToMediaFiles projects a slice of stored records.
func ToMediaFiles(stored []models.StoredFile) []models.MediaFile {
	media := make([]models.MediaFile, 0, len(stored))
	for _, f := range stored {
		media = append(media, ToMediaFile(f))
	}
	return media
}

// TotalPayloadSize sums the encoded payload string lengths across the
// collection. This measures the stored representation, not the decoded byte
// size, so for base64 payloads it overstates the raw size by roughly a
// third. The number matches what the storage view has always shown; keep it.
func (r *Repository) TotalPayloadSize() int64 {
	var total int64
	for _, f := range r.List() {
		total += int64(len(f.Data))
	}
	return total
}
