package models

import "time"

// MediaType classifies a stored asset for preview purposes.
type MediaType string

const (
	MediaTypeImage  MediaType = "image"
	MediaTypeSVG    MediaType = "svg"
	MediaTypeVideo  MediaType = "video"
	MediaTypeLottie MediaType = "lottie"
)

// StoredFile represents one uploaded media asset as persisted, including its
// encoded payload. Records are immutable after creation: they are only ever
// added, deleted or cleared, never edited in place.
type StoredFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       MediaType `json:"type"`
	Size       int64     `json:"size"` // raw payload size in bytes
	UploadDate time.Time `json:"uploadDate"`
	Data       string    `json:"data"` // data URI with base64-encoded payload
}

// MediaFile is the display projection of a StoredFile. URL carries the same
// payload string as StoredFile.Data. It is derived on read and never
// persisted independently.
type MediaFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       MediaType `json:"type"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"uploadDate"`
}

// Album is a named grouping of file references with an optional cover image
// and description. FileIDs keeps insertion order and never contains
// duplicates. CoverImage, when set, refers to a member file id; a cover left
// dangling by a later file deletion stays in the record and is treated as
// "no cover" by readers.
type Album struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"coverImage,omitempty"`
	FileIDs     []string  `json:"fileIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasFile reports whether the given file id is a member of the album.
func (a *Album) HasFile(fileID string) bool {
	for _, id := range a.FileIDs {
		if id == fileID {
			return true
		}
	}
	return false
}
