package domain

import "strings"

// CategoryFilter restricts a library view to one category
type CategoryFilter string

const (
	FilterAll      CategoryFilter = "All"
	FilterText     CategoryFilter = "Text"
	FilterDocument CategoryFilter = "Document"
)

// SortOrder orders a library view
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
	SortAlphabetical SortOrder = "alphabetical"
)

// LibraryViewState is the transient search/filter/sort state of a library listing
type LibraryViewState struct {
	SearchTerm string         `json:"search_term"`
	Category   CategoryFilter `json:"category"`
	Sort       SortOrder      `json:"sort"`
}

// DefaultLibraryView shows everything, newest first
func DefaultLibraryView() LibraryViewState {
	return LibraryViewState{Category: FilterAll, Sort: SortNewest}
}

// ParseCategoryFilter reads a filter, case-insensitively; empty means All
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "text":
		return FilterText, nil
	case "document":
		return FilterDocument, nil
	}
	return "", ErrInvalidInput
}

// ParseSortOrder reads a sort order; empty means newest
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	case "alphabetical":
		return SortAlphabetical, nil
	}
	return "", ErrInvalidInput
}

// Matches checks if a record passes the filter
func (f CategoryFilter) Matches(c Category) bool {
	return f == FilterAll || f == "" || string(f) == string(c)
}
