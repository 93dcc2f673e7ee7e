package albums

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mediavault/internal/store"
	"mediavault/pkg/models"
)

// ErrEmptyAlbumName is returned by Create when the album name is empty or
// whitespace-only. The validation happens here at the repository boundary so
// an empty-named album can never be persisted.
var ErrEmptyAlbumName = errors.New("album name cannot be empty")

// Repository manages the persisted album collection. Like the file
// repository, every mutation is a full load-all/mutate/save-all round-trip
// with a mutex serializing concurrent mutations.
//
// There is no referential-integrity enforcement against the file collection:
// deleting a file elsewhere leaves any albums referencing its id unchanged,
// and readers drop the dangling references on the fly.
type Repository struct {
	store  *store.Adapter
	logger *logrus.Logger
	mutex  sync.Mutex
}

// NewRepository creates an album repository over the given store adapter.
func NewRepository(adapter *store.Adapter) *Repository {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Repository{
		store:  adapter,
		logger: logger,
	}
}

// List returns the current album collection, or an empty slice when the key
// is absent or corrupt.
func (r *Repository) List() []models.Album {
	var albums []models.Album
	r.store.Load(store.KeyAlbums, &albums)
	if albums == nil {
		albums = []models.Album{}
	}
	return albums
}

// Create validates the name, persists a new empty album and returns it.
func (r *Repository) Create(name, description string) (models.Album, error) {
	if strings.TrimSpace(name) == "" {
		return models.Album{}, ErrEmptyAlbumName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	album := models.Album{
		ID:          newAlbumID(),
		Name:        name,
		Description: description,
		FileIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	albums := r.List()
	albums = append(albums, album)
	r.store.Save(store.KeyAlbums, albums)

	r.logger.WithFields(logrus.Fields{
		"album_id": album.ID,
		"name":     album.Name,
	}).Info("Album created")

	return album, nil
}

// Update holds the optional fields of a partial album update. Nil fields are
// left untouched.
type Update struct {
	Name        *string
	Description *string
	CoverImage  *string
	FileIDs     *[]string
}

// Update merges the provided fields over the album with the given id. ID and
// CreatedAt never change; UpdatedAt is always stamped. The second return is
// false when no album has the id.
func (r *Repository) Update(id string, upd Update) (models.Album, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	albums := r.List()
	for i := range albums {
		if albums[i].ID != id {
			continue
		}

		if upd.Name != nil {
			albums[i].Name = *upd.Name
		}
		if upd.Description != nil {
			albums[i].Description = *upd.Description
		}
		if upd.CoverImage != nil {
			albums[i].CoverImage = *upd.CoverImage
		}
		if upd.FileIDs != nil {
			albums[i].FileIDs = *upd.FileIDs
		}
		albums[i].UpdatedAt = time.Now()

		r.store.Save(store.KeyAlbums, albums)
		return albums[i], true
	}

	return models.Album{}, false
}

// Delete removes the album with the given id. Member files are not touched.
func (r *Repository) Delete(id string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	albums := r.List()
	kept := albums[:0]
	for _, a := range albums {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.store.Save(store.KeyAlbums, kept)
}

// AddFile appends a file id to the album. It returns false when the album
// does not exist or the id is already a member, so calling it twice with the
// same arguments leaves exactly one occurrence.
func (r *Repository) AddFile(albumID, fileID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	albums := r.List()
	for i := range albums {
		if albums[i].ID != albumID {
			continue
		}
		if albums[i].HasFile(fileID) {
			return false
		}

		albums[i].FileIDs = append(albums[i].FileIDs, fileID)
		albums[i].UpdatedAt = time.Now()
		r.store.Save(store.KeyAlbums, albums)
		return true
	}
	return false
}

// RemoveFile removes a file id from the album. It returns false only when
// the album does not exist; removing an id that is not a member is a
// successful no-op.
func (r *Repository) RemoveFile(albumID, fileID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	albums := r.List()
	for i := range albums {
		if albums[i].ID != albumID {
			continue
		}

		kept := make([]string, 0, len(albums[i].FileIDs))
		for _, id := range albums[i].FileIDs {
			if id != fileID {
				kept = append(kept, id)
			}
		}
		albums[i].FileIDs = kept
		albums[i].UpdatedAt = time.Now()
		r.store.Save(store.KeyAlbums, albums)
		return true
	}
	return false
}

// SetCover sets the album's cover image. The cover must be a current member
// of the album; this is the one operation that checks membership. It returns
// false, leaving the cover unchanged, when the album is missing or the file
// is not a member.
func (r *Repository) SetCover(albumID, fileID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	albums := r.List()
	for i := range albums {
		if albums[i].ID != albumID {
			continue
		}
		if !albums[i].HasFile(fileID) {
			return false
		}

		albums[i].CoverImage = fileID
		albums[i].UpdatedAt = time.Now()
		r.store.Save(store.KeyAlbums, albums)
		return true
	}
	return false
}

// FilesOf returns the projection of allFiles whose ids are members of the
// album, preserving allFiles' order rather than the album's own sequence.
// File ids that no longer resolve simply drop out of the result (tolerant
// join), which is how dangling references after a file deletion degrade.
func FilesOf(album models.Album, allFiles []models.MediaFile) []models.MediaFile {
	members := make([]models.MediaFile, 0, len(album.FileIDs))
	for _, f := range allFiles {
		if album.HasFile(f.ID) {
			members = append(members, f)
		}
	}
	return members
}

// AlbumsContaining returns every album whose FileIDs include the given file
// id. Reverse lookup is a linear scan; no back-references are stored.
func (r *Repository) AlbumsContaining(fileID string) []models.Album {
	var matches []models.Album
	for _, a := range r.List() {
		if a.HasFile(fileID) {
			matches = append(matches, a)
		}
	}
	return matches
}

// Clear removes the entire album collection.
func (r *Repository) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.store.Remove(store.KeyAlbums)
}

// newAlbumID builds an album id from the current timestamp plus a random
// suffix. Best-effort uniqueness, same scheme as file ids.
func newAlbumID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("album-%d-%s", time.Now().UnixMilli(), suffix)
}
