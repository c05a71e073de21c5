package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// ApplyLibraryView searches, filters and sorts records without touching the
// input slice. Sorting is stable, so ties keep their input order.
func ApplyLibraryView(records []*domain.SummaryRecord, state domain.LibraryViewState) []*domain.SummaryRecord {
	term := strings.ToLower(state.SearchTerm)

	out := make([]*domain.SummaryRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Summary), term) {
			continue
		}
		if !state.Category.Matches(r.Category) {
			continue
		}
		out = append(out, r)
	}

	switch state.Sort {
	case domain.SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case domain.SortAlphabetical:
		col := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
