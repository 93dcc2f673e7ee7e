package files

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"mediavault/pkg/models"
)

// Upload is one pending file in a batch ingest.
type Upload struct {
	Name   string
	Reader io.Reader
}

// BatchFailure records a single file that could not be ingested.
type BatchFailure struct {
	Name string
	Err  error
}

// BatchResult reports the outcome of a batch ingest. Every input file lands
// in exactly one of the two slices.
type BatchResult struct {
	Succeeded []models.MediaFile
	Failed    []BatchFailure
}

// IngestAll ingests the uploads sequentially in input order. Each file's
// success or failure is independent: a failed read is recorded and the batch
// moves on to the next file, so the final collection holds every successful
// ingestion regardless of which files failed. Cancelling the context stops
// the batch before the next file; files already persisted stay persisted.
func (r *Repository) IngestAll(ctx context.Context, uploads []Upload) BatchResult {
	var result BatchResult

	for _, u := range uploads {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, BatchFailure{Name: u.Name, Err: err})
			continue
		}

		stored, err := r.Ingest(ctx, u.Name, u.Reader)
		if err != nil {
			r.logger.WithError(err).WithField("file_name", u.Name).Error("Failed to process file")
			result.Failed = append(result.Failed, BatchFailure{Name: u.Name, Err: err})
			continue
		}

		result.Succeeded = append(result.Succeeded, ToMediaFile(stored))
	}

	r.logger.WithFields(logrus.Fields{
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	}).Info("Batch ingest finished")

	return result
}
