package services

import (
	"testing"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

func viewFixture() []*domain.SummaryRecord {
	at := func(sec int64) time.Time { return time.Unix(sec, 0).UTC() }
	return []*domain.SummaryRecord{
		{ID: "a", Title: "Alpha Report", Summary: "margin outlook", CreatedAt: at(100), Category: domain.CategoryText},
		{ID: "b", Title: "Beta Doc", Summary: "supply chain", CreatedAt: at(200), Category: domain.CategoryDocument},
		{ID: "g", Title: "Gamma", Summary: "hiring plan", CreatedAt: at(50), Category: domain.CategoryText},
	}
}

func ids(records []*domain.SummaryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyLibraryView(t *testing.T) {
	tests := []struct {
		name  string
		state domain.LibraryViewState
		want  []string
	}{
		{"newest", domain.LibraryViewState{Category: domain.FilterAll, Sort: domain.SortNewest}, []string{"b", "a", "g"}},
		{"oldest", domain.LibraryViewState{Category: domain.FilterAll, Sort: domain.SortOldest}, []string{"g", "a", "b"}},
		{"alphabetical", domain.LibraryViewState{Category: domain.FilterAll, Sort: domain.SortAlphabetical}, []string{"a", "b", "g"}},
		{"document filter", domain.LibraryViewState{Category: domain.FilterDocument, Sort: domain.SortNewest}, []string{"b"}},
		{"search title case-insensitive", domain.LibraryViewState{SearchTerm: "alp", Category: domain.FilterAll}, []string{"a"}},
		{"search summary", domain.LibraryViewState{SearchTerm: "SUPPLY", Category: domain.FilterAll}, []string{"b"}},
		{"search and filter", domain.LibraryViewState{SearchTerm: "a", Category: domain.FilterText, Sort: domain.SortOldest}, []string{"g", "a"}},
		{"no match", domain.LibraryViewState{SearchTerm: "zzz", Category: domain.FilterAll}, []string{}},
		{"zero state", domain.LibraryViewState{}, []string{"b", "a", "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyLibraryView(viewFixture(), tt.state))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyLibraryView_DoesNotMutateInput(t *testing.T) {
	records := viewFixture()
	before := ids(records)

	_ = ApplyLibraryView(records, domain.LibraryViewState{Sort: domain.SortAlphabetical, Category: domain.FilterText})

	if !equalIDs(ids(records), before) {
		t.Errorf("input reordered: %v", ids(records))
	}
}

func TestApplyLibraryView_StableTies(t *testing.T) {
	same := time.Unix(500, 0)
	records := []*domain.SummaryRecord{
		{ID: "1", Title: "Same", CreatedAt: same},
		{ID: "2", Title: "Same", CreatedAt: same},
		{ID: "3", Title: "Same", CreatedAt: same},
	}

	for _, order := range []domain.SortOrder{domain.SortNewest, domain.SortOldest, domain.SortAlphabetical} {
		got := ids(ApplyLibraryView(records, domain.LibraryViewState{Sort: order}))
		if !equalIDs(got, []string{"1", "2", "3"}) {
			t.Errorf("%s: ties reordered: %v", order, got)
		}
	}
}

func TestApplyLibraryView_LocaleAwareTitles(t *testing.T) {
	records := []*domain.SummaryRecord{
		{ID: "z", Title: "zebra"},
		{ID: "e", Title: "Éclair"},
		{ID: "a", Title: "apple"},
	}
	got := ids(ApplyLibraryView(records, domain.LibraryViewState{Sort: domain.SortAlphabetical}))
	if !equalIDs(got, []string{"a", "e", "z"}) {
		t.Errorf("got %v, want [a e z]", got)
	}
}
