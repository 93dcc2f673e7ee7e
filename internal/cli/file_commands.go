package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mediavault/internal/auth"
	"mediavault/internal/files"
	"mediavault/internal/views"
	"mediavault/pkg/models"
)

var (
	lsType    string
	lsSort    string
	lsPage    int
	lsPerPage int
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload files into the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanUpload(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to upload files; please log in")
		}

		var uploads []files.Upload
		var handles []*os.File
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				// Report it as a failed upload and keep going; a missing
				// file must not abort the rest of the batch.
				uploads = append(uploads, files.Upload{
					Name:   filepath.Base(path),
					Reader: &failingReader{err: err},
				})
				continue
			}
			handles = append(handles, f)
			uploads = append(uploads, files.Upload{Name: filepath.Base(path), Reader: f})
		}

		result := engine.Files.IngestAll(cmd.Context(), uploads)
		for _, f := range handles {
			f.Close()
		}

		for _, failure := range result.Failed {
			fmt.Fprintf(os.Stderr, "failed to upload %s: %v\n", failure.Name, failure.Err)
		}
		fmt.Printf("Uploaded %d of %d files\n", len(result.Succeeded), len(uploads))
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		media := files.ToMediaFiles(engine.Files.List())

		if lsType != "" {
			media = views.FilterByType(media, models.MediaType(lsType))
		}

		switch lsSort {
		case "name":
			media = views.SortByName(media)
		case "size":
			media = views.SortBySize(media)
		default:
			media = views.SortByUploadDate(media)
		}

		page, totalPages := views.Page(media, lsPage, lsPerPage)
		for _, f := range page {
			fmt.Printf("%-32s  %-6s  %10s  %s  %s\n",
				f.ID, f.Type, views.FormatFileSize(f.Size),
				f.UploadDate.Format("2006-01-02 15:04"), f.Name)
		}

		shown := lsPage
		if shown > totalPages {
			shown = totalPages
		}
		if shown < 1 {
			shown = 1
		}
		fmt.Printf("Page %d/%d (%d files)\n", shown, totalPages, len(media))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <fileID>...",
	Short: "Delete files from the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanDelete(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to delete files")
		}

		for _, id := range args {
			engine.Files.Delete(id)
		}
		fmt.Printf("Deleted %d file(s)\n", len(args))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every file from the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanDelete(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to clear files")
		}

		engine.Files.Clear()
		fmt.Println("All files cleared")
		return nil
	},
}

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show storage usage by media type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		media := files.ToMediaFiles(engine.Files.List())
		counts := views.CountByType(media)

		fmt.Printf("Files: %d\n", len(media))
		for _, t := range []models.MediaType{models.MediaTypeImage, models.MediaTypeSVG, models.MediaTypeVideo, models.MediaTypeLottie} {
			if counts[t] > 0 {
				fmt.Printf("  %-6s %d\n", t, counts[t])
			}
		}
		fmt.Printf("Storage used: %s\n", views.FormatStorageSize(engine.Files.TotalPayloadSize()))
		return nil
	},
}

// failingReader defers an open error into the batch so the upload surfaces
// it as a per-file failure instead of aborting the whole command.
type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

func init() {
	lsCmd.Flags().StringVar(&lsType, "type", "", "Filter by media type (image, svg, video, lottie)")
	lsCmd.Flags().StringVar(&lsSort, "sort", "date", "Sort order (date, name, size)")
	lsCmd.Flags().IntVar(&lsPage, "page", 1, "Page number")
	lsCmd.Flags().IntVar(&lsPerPage, "per-page", 20, "Files per page")
}
