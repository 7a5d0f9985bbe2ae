// Package catalog holds the pure presentation rules for a room's file list:
// type categories, search and category filtering, and display formatting.
package catalog

import "strings"

// Category is the coarse type bucket a MIME type falls into.
type Category string

const (
	All      Category = "All"
	Images   Category = "Images"
	Videos   Category = "Videos"
	Audio    Category = "Audio"
	Docs     Category = "Docs"
	Archives Category = "Archives"
	Others   Category = "Others"
)

// FilterOptions is the category dropdown. Audio files are listed under All
// but have no entry of their own.
var FilterOptions = []Category{All, Images, Videos, Docs, Archives, Others}

// CategoryOf maps a MIME type to its category. Rules are tried in order and
// the first match wins.
func CategoryOf(mimeType string) Category {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return Images
	case strings.HasPrefix(mimeType, "video/"):
		return Videos
	case strings.HasPrefix(mimeType, "audio/"):
		return Audio
	case mimeType == "application/pdf":
		return Docs
	case containsAny(mimeType, "document", "text", "sheet", "presentation"):
		return Docs
	case containsAny(mimeType, "zip", "rar", "7z", "tar"):
		return Archives
	default:
		return Others
	}
}

// ParseCategory reads a dropdown value. Unknown or empty input means All.
func ParseCategory(s string) Category {
	for _, c := range FilterOptions {
		if string(c) == s {
			return c
		}
	}
	return All
}

// Icon is the short badge shown on a file card.
func Icon(c Category) string {
	switch c {
	case Images:
		return "IMG"
	case Videos:
		return "VID"
	case Audio:
		return "AUD"
	case Docs:
		return "DOC"
	case Archives:
		return "ZIP"
	default:
		return "FILE"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
