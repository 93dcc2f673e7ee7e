// Package views computes the read-only projections the frontend renders:
// sort orders, type filters, pagination windows and storage-size summaries.
// Everything here is a pure function over data the repositories return.
package views

import (
	"sort"

	"mediavault/pkg/models"
)

// SortByUploadDate returns the files ordered newest first. This is the
// default gallery order.
func SortByUploadDate(files []models.MediaFile) []models.MediaFile {
	sorted := append([]models.MediaFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadDate.After(sorted[j].UploadDate)
	})
	return sorted
}

// SortByName returns the files ordered by name ascending.
func SortByName(files []models.MediaFile) []models.MediaFile {
	sorted := append([]models.MediaFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// SortBySize returns the files ordered largest first.
func SortBySize(files []models.MediaFile) []models.MediaFile {
	sorted := append([]models.MediaFile(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})
	return sorted
}

// FilterByType returns only the files of the given media type.
func FilterByType(files []models.MediaFile, mediaType models.MediaType) []models.MediaFile {
	filtered := make([]models.MediaFile, 0, len(files))
	for _, f := range files {
		if f.Type == mediaType {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// CountByType tallies the collection per media type.
func CountByType(files []models.MediaFile) map[models.MediaType]int {
	counts := make(map[models.MediaType]int)
	for _, f := range files {
		counts[f.Type]++
	}
	return counts
}

// Page returns the 1-based page of files and the total page count. An
// out-of-range page clamps to the nearest valid page; perPage below 1 is
// treated as 1. An empty collection yields an empty page and a total of 1.
func Page(files []models.MediaFile, page, perPage int) ([]models.MediaFile, int) {
	if perPage < 1 {
		perPage = 1
	}

	totalPages := (len(files) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	if start >= len(files) {
		return []models.MediaFile{}, totalPages
	}

	end := start + perPage
	if end > len(files) {
		end = len(files)
	}
	return files[start:end], totalPages
}
