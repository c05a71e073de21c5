package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

func TestLibraryViewFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeLibraryViewScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type libraryViewWorld struct {
	records []*domain.SummaryRecord
	view    []*domain.SummaryRecord
}

func initializeLibraryViewScenario(sc *godog.ScenarioContext) {
	w := &libraryViewWorld{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = libraryViewWorld{}
		return ctx, nil
	})

	sc.Step(`^the library contains:$`, w.libraryContains)
	sc.Step(`^I view the library with search "([^"]*)" category "([^"]*)" and sort "([^"]*)"$`, w.viewLibrary)
	sc.Step(`^I see "([^"]*)"$`, w.iSee)
	sc.Step(`^I see nothing$`, w.iSeeNothing)
	sc.Step(`^the library still lists "([^"]*)" in insertion order$`, w.libraryStillLists)
}

func (w *libraryViewWorld) libraryContains(table *godog.Table) error {
	header := table.Rows[0].Cells
	col := make(map[string]int, len(header))
	for i, c := range header {
		col[c.Value] = i
	}

	for i, row := range table.Rows[1:] {
		created, err := strconv.ParseInt(row.Cells[col["created"]].Value, 10, 64)
		if err != nil {
			return fmt.Errorf("row %d: created: %w", i+1, err)
		}
		w.records = append(w.records, &domain.SummaryRecord{
			ID:        fmt.Sprintf("rec-%d", i+1),
			OwnerID:   "user-1",
			Title:     row.Cells[col["title"]].Value,
			Summary:   row.Cells[col["summary"]].Value,
			Category:  domain.Category(row.Cells[col["category"]].Value),
			CreatedAt: time.Unix(created, 0),
		})
	}
	return nil
}

func (w *libraryViewWorld) viewLibrary(search, category, sortOrder string) error {
	filter, err := domain.ParseCategoryFilter(category)
	if err != nil {
		return err
	}
	order, err := domain.ParseSortOrder(sortOrder)
	if err != nil {
		return err
	}
	w.view = ApplyLibraryView(w.records, domain.LibraryViewState{
		SearchTerm: search,
		Category:   filter,
		Sort:       order,
	})
	return nil
}

func (w *libraryViewWorld) iSee(list string) error {
	return expectTitles(w.view, list)
}

func (w *libraryViewWorld) iSeeNothing() error {
	if len(w.view) != 0 {
		return fmt.Errorf("expected no records, got %s", joinTitles(w.view))
	}
	return nil
}

func (w *libraryViewWorld) libraryStillLists(list string) error {
	return expectTitles(w.records, list)
}

func expectTitles(records []*domain.SummaryRecord, list string) error {
	want := strings.Split(list, ", ")
	if got := joinTitles(records); got != strings.Join(want, ", ") {
		return fmt.Errorf("expected %q, got %q", list, got)
	}
	return nil
}

func joinTitles(records []*domain.SummaryRecord) string {
	titles := make([]string, len(records))
	for i, r := range records {
		titles[i] = r.Title
	}
	return strings.Join(titles, ", ")
}
