package files

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mediavault/pkg/models"
)

// ReadError reports that a file's payload could not be read during ingest.
// It carries the file name so batch callers can report per-file failures.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Ingest reads the full payload from src, encodes it as a data URI, infers
// the media type and stores the new record in the collection. The returned
// StoredFile is already persisted. A read failure is returned as *ReadError
// and nothing is persisted; the caller decides whether to continue with
// remaining files. There is no automatic retry.
func (r *Repository) Ingest(ctx context.Context, name string, src io.Reader) (models.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return models.StoredFile{}, &ReadError{Name: name, Err: err}
	}

	payload, err := io.ReadAll(src)
	if err != nil {
		r.logger.WithError(err).WithField("file_name", name).Error("Failed to read file payload")
		return models.StoredFile{}, &ReadError{Name: name, Err: err}
	}

	mime := mimetype.Detect(payload).String()
	dataURI := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(payload))

	file := models.StoredFile{
		ID:         newFileID(),
		Name:       name,
		Type:       ClassifyMediaType(mime, name),
		Size:       int64(len(payload)),
		UploadDate: time.Now(),
		Data:       dataURI,
	}

	r.Add(file)
	return file, nil
}

// ClassifyMediaType infers the media type from a MIME type and filename,
// checking in priority order: SVG first (by MIME or extension), then raster
// images, then video, then Lottie animations by extension. Anything else is
// treated as an image.
func ClassifyMediaType(mime, name string) models.MediaType {
	lower := strings.ToLower(name)

	switch {
	case strings.HasPrefix(mime, "image/svg+xml") || strings.HasSuffix(lower, ".svg"):
		return models.MediaTypeSVG
	case strings.HasPrefix(mime, "image/"):
		return models.MediaTypeImage
	case strings.HasPrefix(mime, "video/"):
		return models.MediaTypeVideo
	case strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".lottie"):
		return models.MediaTypeLottie
	default:
		return models.MediaTypeImage
	}
}

// newFileID builds an id from the current timestamp plus a random suffix.
// Uniqueness is best-effort: collisions are negligible in practice but not
// impossible, and ids are never reused.
func newFileID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
