package albums

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/internal/files"
	"mediavault/internal/store"
	"mediavault/pkg/models"
)

func newTestRepository(t *testing.T) (*Repository, *store.Adapter) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	adapter := store.NewAdapter(store.NewMemoryBackend(), logger)
	repo := NewRepository(adapter)
	repo.logger.SetOutput(io.Discard)
	return repo, adapter
}

func TestCreate(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "summer photos")
	require.NoError(t, err)

	assert.NotEmpty(t, album.ID)
	assert.Equal(t, "Trip", album.Name)
	assert.Equal(t, "summer photos", album.Description)
	assert.Empty(t, album.FileIDs)
	assert.NotNil(t, album.FileIDs)
	assert.Equal(t, album.CreatedAt, album.UpdatedAt)

	listed := repo.List()
	require.Len(t, listed, 1)
	assert.Equal(t, album.ID, listed[0].ID)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	repo, _ := newTestRepository(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := repo.Create(name, "")
		assert.ErrorIs(t, err, ErrEmptyAlbumName)
	}
	assert.Empty(t, repo.List())
}

func TestUpdate(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	newName := "Summer Trip"
	newDesc := "beach days"
	updated, ok := repo.Update(album.ID, Update{Name: &newName, Description: &newDesc})
	require.True(t, ok)

	assert.Equal(t, "Summer Trip", updated.Name)
	assert.Equal(t, "beach days", updated.Description)
	assert.Equal(t, album.ID, updated.ID)
	assert.Equal(t, album.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(album.UpdatedAt))
}

func TestUpdateMissingAlbum(t *testing.T) {
	repo, _ := newTestRepository(t)

	name := "anything"
	_, ok := repo.Update("no-such-album", Update{Name: &name})
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "")
	require.NoError(t, err)

	repo.Delete(album.ID)
	assert.Empty(t, repo.List())

	// Deleting a non-existent album is a no-op.
	repo.Delete("no-such-album")
}

func TestAddFileIsIdempotent(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "")
	require.NoError(t, err)

	assert.True(t, repo.AddFile(album.ID, "f1"))
	assert.False(t, repo.AddFile(album.ID, "f1"))

	listed := repo.List()
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"f1"}, listed[0].FileIDs)
}

func TestAddFileMissingAlbum(t *testing.T) {
	repo, _ := newTestRepository(t)
	assert.False(t, repo.AddFile("no-such-album", "f1"))
}

func TestRemoveFile(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "")
	require.NoError(t, err)
	require.True(t, repo.AddFile(album.ID, "f1"))
	require.True(t, repo.AddFile(album.ID, "f2"))

	assert.True(t, repo.RemoveFile(album.ID, "f1"))
	assert.Equal(t, []string{"f2"}, repo.List()[0].FileIDs)

	// Removing an absent member is a successful no-op.
	assert.True(t, repo.RemoveFile(album.ID, "f1"))

	// Only a missing album fails.
	assert.False(t, repo.RemoveFile("no-such-album", "f1"))
}

func TestSetCoverRequiresMembership(t *testing.T) {
	repo, _ := newTestRepository(t)

	album, err := repo.Create("Trip", "")
	require.NoError(t, err)
	require.True(t, repo.AddFile(album.ID, "f1"))

	assert.False(t, repo.SetCover(album.ID, "f2"))
	assert.Empty(t, repo.List()[0].CoverImage)

	assert.True(t, repo.SetCover(album.ID, "f1"))
	assert.Equal(t, "f1", repo.List()[0].CoverImage)

	assert.False(t, repo.SetCover("no-such-album", "f1"))
}

func TestFilesOfPreservesFileListOrder(t *testing.T) {
	album := models.Album{
		ID:      "a1",
		FileIDs: []string{"f3", "f1"},
	}

	allFiles := []models.MediaFile{
		{ID: "f1", Name: "one"},
		{ID: "f2", Name: "two"},
		{ID: "f3", Name: "three"},
	}

	members := FilesOf(album, allFiles)
	require.Len(t, members, 2)

	// The join filters allFiles; it does not reorder by the album sequence.
	assert.Equal(t, "f1", members[0].ID)
	assert.Equal(t, "f3", members[1].ID)
}

func TestFilesOfDropsDanglingReferences(t *testing.T) {
	album := models.Album{
		ID:      "a1",
		FileIDs: []string{"f1", "deleted"},
	}

	allFiles := []models.MediaFile{{ID: "f1"}}

	members := FilesOf(album, allFiles)
	require.Len(t, members, 1)
	assert.Equal(t, "f1", members[0].ID)
}

func TestAlbumsContaining(t *testing.T) {
	repo, _ := newTestRepository(t)

	first, err := repo.Create("First", "")
	require.NoError(t, err)
	second, err := repo.Create("Second", "")
	require.NoError(t, err)
	require.True(t, repo.AddFile(first.ID, "f1"))
	require.True(t, repo.AddFile(second.ID, "f1"))
	require.True(t, repo.AddFile(second.ID, "f2"))

	matches := repo.AlbumsContaining("f1")
	assert.Len(t, matches, 2)

	matches = repo.AlbumsContaining("f2")
	require.Len(t, matches, 1)
	assert.Equal(t, second.ID, matches[0].ID)

	assert.Empty(t, repo.AlbumsContaining("f3"))
}

// Deleting a file from the file repository must leave a cover reference in
// place; readers treat the dangling cover as "no cover", never as an error.
func TestDanglingCoverSurvivesFileDeletion(t *testing.T) {
	albumRepo, adapter := newTestRepository(t)
	fileRepo := files.NewRepository(adapter)

	fileRepo.Add(models.StoredFile{ID: "f1", Name: "cover.png"})

	album, err := albumRepo.Create("Trip", "")
	require.NoError(t, err)
	require.True(t, albumRepo.AddFile(album.ID, "f1"))
	require.True(t, albumRepo.SetCover(album.ID, "f1"))

	fileRepo.Delete("f1")

	stored := albumRepo.List()[0]
	assert.Equal(t, "f1", stored.CoverImage)

	// The tolerant join simply no longer resolves the cover.
	members := FilesOf(stored, files.ToMediaFiles(fileRepo.List()))
	assert.Empty(t, members)
}
