// Package importer feeds the file repository from a watched directory on
// disk: files dropped into the import directory are ingested the same way an
// interactive upload would be.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"mediavault/internal/auth"
	"mediavault/internal/files"
	"mediavault/pkg/models"
)

// supportedExtensions limits imports to the media kinds the manager can
// preview. Anything else in the import directory is ignored.
var supportedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".bmp": true, ".svg": true,
	".mp4": true, ".webm": true, ".mov": true,
	".json": true, ".lottie": true,
}

// Importer watches a directory and ingests new media files as they appear.
type Importer struct {
	repo    *files.Repository
	user    *models.User
	dir     string
	watcher *fsnotify.Watcher
	logger  *logrus.Logger
}

// New creates an importer acting as the given user over the given directory.
func New(repo *files.Repository, user *models.User, dir string) *Importer {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Importer{
		repo:   repo,
		user:   user,
		dir:    dir,
		logger: logger,
	}
}

// ScanOnce ingests everything currently sitting in the import directory and
// returns the batch result. Each file succeeds or fails on its own; one
// unreadable file never aborts the scan.
func (im *Importer) ScanOnce(ctx context.Context) (files.BatchResult, error) {
	if !auth.CanUpload(im.user) {
		return files.BatchResult{}, fmt.Errorf("user is not permitted to upload files")
	}

	entries, err := os.ReadDir(im.dir)
	if err != nil {
		return files.BatchResult{}, fmt.Errorf("failed to read import directory: %w", err)
	}

	var uploads []files.Upload
	var handles []*os.File
	for _, entry := range entries {
		if entry.IsDir() || !isSupportedFile(entry.Name()) {
			continue
		}

		path := filepath.Join(im.dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			im.logger.WithError(err).WithField("path", path).Error("Failed to open file for import")
			continue
		}
		handles = append(handles, f)
		uploads = append(uploads, files.Upload{Name: entry.Name(), Reader: f})
	}

	result := im.repo.IngestAll(ctx, uploads)
	for _, f := range handles {
		f.Close()
	}

	im.logger.WithFields(logrus.Fields{
		"directory": im.dir,
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	}).Info("Import scan finished")

	return result, nil
}

// Start begins watching the import directory. It returns once the watcher is
// running; ingestion happens in the background until the context is
// cancelled or Stop is called.
func (im *Importer) Start(ctx context.Context) error {
	if !auth.CanUpload(im.user) {
		return fmt.Errorf("user is not permitted to upload files")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	im.watcher = watcher

	if err := watcher.Add(im.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch import directory: %w", err)
	}

	go im.watchFiles(ctx)

	im.logger.WithField("directory", im.dir).Info("Import watcher started")
	return nil
}

// Stop closes the watcher. Safe to call when Start was never called.
func (im *Importer) Stop() {
	if im.watcher != nil {
		im.watcher.Close()
	}
}

// watchFiles selects on watcher channels and dispatches events.
func (im *Importer) watchFiles(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			im.watcher.Close()
			return

		case event, ok := <-im.watcher.Events:
			if !ok {
				return
			}
			im.handleFileEvent(ctx, event)

		case err, ok := <-im.watcher.Errors:
			if !ok {
				return
			}
			im.logger.WithError(err).Error("Import watcher error")
		}
	}
}

// handleFileEvent filters events and ingests newly created media files.
func (im *Importer) handleFileEvent(ctx context.Context, event fsnotify.Event) {
	fileName := filepath.Base(event.Name)
	if strings.HasPrefix(fileName, ".") || strings.HasSuffix(fileName, ".tmp") {
		return
	}

	if !event.Has(fsnotify.Create) || !isSupportedFile(fileName) {
		return
	}

	// Dispatch asynchronously; the short delay lets the writer finish.
	go func(path, name string) {
		time.Sleep(500 * time.Millisecond)
		im.ingestPath(ctx, path, name)
	}(event.Name, fileName)
}

// ingestPath opens and ingests one file, logging the outcome.
func (im *Importer) ingestPath(ctx context.Context, path, name string) {
	f, err := os.Open(path)
	if err != nil {
		im.logger.WithError(err).WithField("path", path).Error("Failed to open imported file")
		return
	}
	defer f.Close()

	stored, err := im.repo.Ingest(ctx, name, f)
	if err != nil {
		im.logger.WithError(err).WithField("file_name", name).Error("Failed to ingest imported file")
		return
	}

	im.logger.WithFields(logrus.Fields{
		"file_id":   stored.ID,
		"file_name": stored.Name,
		"type":      stored.Type,
	}).Info("Imported file added to library")
}

// isSupportedFile checks if the filename has a supported media extension.
func isSupportedFile(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}
