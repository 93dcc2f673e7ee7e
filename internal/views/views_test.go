package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediavault/pkg/models"
)

func sampleFiles() []models.MediaFile {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.MediaFile{
		{ID: "f1", Name: "banner.svg", Type: models.MediaTypeSVG, Size: 300, UploadDate: base},
		{ID: "f2", Name: "clip.mp4", Type: models.MediaTypeVideo, Size: 5000, UploadDate: base.Add(2 * time.Hour)},
		{ID: "f3", Name: "avatar.png", Type: models.MediaTypeImage, Size: 1200, UploadDate: base.Add(time.Hour)},
	}
}

func TestSortByUploadDateNewestFirst(t *testing.T) {
	sorted := SortByUploadDate(sampleFiles())

	require.Len(t, sorted, 3)
	assert.Equal(t, "f2", sorted[0].ID)
	assert.Equal(t, "f3", sorted[1].ID)
	assert.Equal(t, "f1", sorted[2].ID)
}

func TestSortByName(t *testing.T) {
	sorted := SortByName(sampleFiles())

	assert.Equal(t, "avatar.png", sorted[0].Name)
	assert.Equal(t, "banner.svg", sorted[1].Name)
	assert.Equal(t, "clip.mp4", sorted[2].Name)
}

func TestSortBySizeLargestFirst(t *testing.T) {
	sorted := SortBySize(sampleFiles())

	assert.Equal(t, int64(5000), sorted[0].Size)
	assert.Equal(t, int64(300), sorted[2].Size)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	files := sampleFiles()
	SortByName(files)
	assert.Equal(t, "f1", files[0].ID)
}

func TestFilterByType(t *testing.T) {
	files := sampleFiles()

	images := FilterByType(files, models.MediaTypeImage)
	require.Len(t, images, 1)
	assert.Equal(t, "f3", images[0].ID)

	assert.Empty(t, FilterByType(files, models.MediaTypeLottie))
}

func TestCountByType(t *testing.T) {
	counts := CountByType(sampleFiles())

	assert.Equal(t, 1, counts[models.MediaTypeImage])
	assert.Equal(t, 1, counts[models.MediaTypeSVG])
	assert.Equal(t, 1, counts[models.MediaTypeVideo])
	assert.Equal(t, 0, counts[models.MediaTypeLottie])
}

func TestPage(t *testing.T) {
	files := sampleFiles()

	t.Run("first page", func(t *testing.T) {
		page, total := Page(files, 1, 2)
		assert.Equal(t, 2, total)
		require.Len(t, page, 2)
		assert.Equal(t, "f1", page[0].ID)
	})

	t.Run("last page is partial", func(t *testing.T) {
		page, total := Page(files, 2, 2)
		assert.Equal(t, 2, total)
		require.Len(t, page, 1)
		assert.Equal(t, "f3", page[0].ID)
	})

	t.Run("out of range clamps", func(t *testing.T) {
		page, total := Page(files, 99, 2)
		assert.Equal(t, 2, total)
		assert.Len(t, page, 1)

		page, _ = Page(files, 0, 2)
		assert.Len(t, page, 2)
	})

	t.Run("empty collection", func(t *testing.T) {
		page, total := Page(nil, 1, 10)
		assert.Equal(t, 1, total)
		assert.Empty(t, page)
	})

	t.Run("per-page below one", func(t *testing.T) {
		page, total := Page(files, 1, 0)
		assert.Equal(t, 3, total)
		assert.Len(t, page, 1)
	})
}
