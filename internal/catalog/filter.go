package catalog

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/shareit/internal/server/models"
)

// MatchesSearch reports whether the file name contains q, ignoring case.
// An empty q matches everything.
func MatchesSearch(f *models.File, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(f.Name), strings.ToLower(q))
}

// MatchesCategory reports whether f belongs to c. All matches everything.
func MatchesCategory(f *models.File, c Category) bool {
	return c == All || CategoryOf(f.MIMEType) == c
}

// Filter returns the files matching both the search text and the category,
// newest upload first. files is left untouched.
func Filter(files []*models.File, q string, c Category) []*models.File {
	out := make([]*models.File, 0, len(files))
	for _, f := range files {
		if MatchesSearch(f, q) && MatchesCategory(f, c) {
			out = append(out, f)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders files by upload time, latest first, in place.
// Files uploaded at the same instant keep their relative order.
func SortNewestFirst(files []*models.File) {
	slices.SortStableFunc(files, func(a, b *models.File) int {
		return b.UploadedAt.Compare(a.UploadedAt)
	})
}
