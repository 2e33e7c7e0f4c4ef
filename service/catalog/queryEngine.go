package catalog

import (
	"strings"

	"digitallibrary/model"
)

// PageSize is the fixed number of books materialized per page.
const PageSize = 12

// ApplyFilters returns the subset of books matching the genre, language and
// free-text predicates, preserving the original relative order. It is a pure
// function recomputed from the full catalog on every call; at catalog scale
// (tens to low hundreds of records) an index would be overkill.
//
// The search term matches title, author and description case-insensitively.
// When no genre filter is active it also matches the genre field, so typing
// "mystery" in the search box works without touching the genre dropdown.
func ApplyFilters(books []model.Book, genre, language, search string) []model.Book {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if genre != "" && b.Genre != genre {
			continue
		}
		if language != "" && b.Language != language {
			continue
		}
		if search != "" && !matchesSearch(b, search, genre == "") {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b model.Book, search string, includeGenre bool) bool {
	if strings.Contains(strings.ToLower(b.Title), search) ||
		strings.Contains(strings.ToLower(b.Author), search) ||
		strings.Contains(strings.ToLower(b.Description), search) {
		return true
	}
	return includeGenre && strings.Contains(strings.ToLower(b.Genre), search)
}

// VisibleCount is the pagination rule: min(filtered, page*PageSize), page >= 1.
func VisibleCount(filteredLen, page int) int {
	if page < 1 {
		page = 1
	}
	n := page * PageSize
	if n > filteredLen {
		return filteredLen
	}
	return n
}
