package services

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
)

type libraryFixture struct {
	store *mocks.MockRecordStore
	users *mocks.MockUserStore
	reg   *WorkspaceRegistry
	svc   driving.LibraryService
}

func newLibraryFixture() *libraryFixture {
	f := &libraryFixture{
		store: mocks.NewMockRecordStore(),
		users: mocks.NewMockUserStore(),
	}
	f.reg = NewWorkspaceRegistry(f.store, nil, WorkspaceRegistryConfig{})
	f.svc = NewLibraryService(f.store, f.users, f.reg, nil)
	return f
}

func TestLibraryService_List(t *testing.T) {
	f := newLibraryFixture()
	seedRow(f.store, "a", "user-1", "Alpha Report", 100)
	seedRow(f.store, "g", "user-1", "Gamma", 50)
	seedRow(f.store, "z", "user-2", "Alpha Elsewhere", 400)

	got, err := f.svc.List(context.Background(), testAuth, domain.LibraryViewState{SearchTerm: "alpha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(ids(got), []string{"a"}) {
		t.Errorf("got %v, want [a]", ids(got))
	}
}

func TestLibraryService_NoCrossUserLeakage(t *testing.T) {
	f := newLibraryFixture()
	f.store.ListFn = func(string) ([]*driven.SummaryRow, error) {
		return []*driven.SummaryRow{
			{ID: "mine", UserID: "user-1", Title: "Mine", Category: "Text"},
			{ID: "foreign", UserID: "intruder", Title: "Foreign", Category: "Text"},
		}, nil
	}
	f.store.Seed(&driven.SummaryRow{ID: "foreign", UserID: "intruder", Title: "Foreign"})

	got, err := f.svc.List(context.Background(), testAuth, domain.DefaultLibraryView())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range got {
		if r.OwnerID != testAuth.UserID {
			t.Errorf("record %s owned by %s returned to %s", r.ID, r.OwnerID, testAuth.UserID)
		}
	}

	dash, err := f.svc.Dashboard(context.Background(), testAuth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range dash.Recent {
		if r.OwnerID != testAuth.UserID {
			t.Errorf("dashboard leaked record %s", r.ID)
		}
	}

	if _, err := f.svc.Get(context.Background(), testAuth, "foreign"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign record should be not found, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), testAuth, "foreign"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign delete should be not found, got %v", err)
	}
}

func TestLibraryService_Delete(t *testing.T) {
	f := newLibraryFixture()
	seedRow(f.store, "a", "user-1", "Alpha", 100)
	seedRow(f.store, "b", "user-1", "Beta", 200)
	ctx := context.Background()

	before, _ := f.svc.Count(ctx, testAuth)

	if err := f.svc.Delete(ctx, testAuth, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := f.svc.Count(ctx, testAuth)
	if after != before-1 {
		t.Errorf("count = %d, want %d", after, before-1)
	}
	list, _ := f.svc.List(ctx, testAuth, domain.DefaultLibraryView())
	if !equalIDs(ids(list), []string{"b"}) {
		t.Errorf("list = %v, want [b]", ids(list))
	}
	if f.store.Len() != 1 {
		t.Errorf("store has %d rows, want 1", f.store.Len())
	}
}

func TestLibraryService_DeleteFailureLeavesStateUnchanged(t *testing.T) {
	f := newLibraryFixture()
	seedRow(f.store, "a", "user-1", "Alpha", 100)
	seedRow(f.store, "b", "user-1", "Beta", 200)
	f.store.DeleteFn = func(string) error { return errors.New("permission denied for table summaries") }
	ctx := context.Background()

	before, _ := f.svc.List(ctx, testAuth, domain.DefaultLibraryView())
	beforeCount, _ := f.svc.Count(ctx, testAuth)

	err := f.svc.Delete(ctx, testAuth, "a")
	if !errors.Is(err, domain.ErrDeleteFailed) {
		t.Fatalf("expected ErrDeleteFailed, got %v", err)
	}

	after, _ := f.svc.List(ctx, testAuth, domain.DefaultLibraryView())
	afterCount, _ := f.svc.Count(ctx, testAuth)
	if !equalIDs(ids(after), ids(before)) || afterCount != beforeCount {
		t.Errorf("state changed: %v/%d -> %v/%d", ids(before), beforeCount, ids(after), afterCount)
	}
	if rec, err := f.svc.Get(ctx, testAuth, "a"); err != nil || rec.Title != "Alpha" {
		t.Errorf("record should still be retrievable, got %v, %v", rec, err)
	}
}

func TestLibraryService_Dashboard(t *testing.T) {
	f := newLibraryFixture()
	_ = f.users.Save(context.Background(), &domain.User{ID: "user-1", Email: "reader@example.com", Tier: domain.TierPro})
	for i, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		seedRow(f.store, id, "user-1", id, int64(100*(i+1)))
	}

	dash, err := f.svc.Dashboard(context.Background(), testAuth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", dash.TotalCount)
	}
	if !equalIDs(ids(dash.Recent), []string{"r5", "r4", "r3"}) {
		t.Errorf("Recent = %v, want [r5 r4 r3]", ids(dash.Recent))
	}
	if dash.User.Name != "reader" || dash.User.Tier != domain.TierPro {
		t.Errorf("unexpected user: %+v", dash.User)
	}
}

func TestLibraryService_SeesWritesFromOtherInstances(t *testing.T) {
	store := mocks.NewMockRecordStore()
	seedRow(store, "a", "user-1", "Alpha", 100)
	seedRow(store, "b", "user-1", "Beta", 200)
	users := mocks.NewMockUserStore()
	ctx := context.Background()

	instanceA := NewLibraryService(store, users, NewWorkspaceRegistry(store, nil, WorkspaceRegistryConfig{}), nil)
	instanceB := NewLibraryService(store, users, NewWorkspaceRegistry(store, nil, WorkspaceRegistryConfig{}), nil)

	// Both instances have the workspace resident before the delete
	if _, err := instanceA.List(ctx, testAuth, domain.DefaultLibraryView()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := instanceB.Delete(ctx, testAuth, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seedRow(store, "c", "user-1", "Gamma", 300)

	list, err := instanceA.List(ctx, testAuth, domain.DefaultLibraryView())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(ids(list), []string{"c", "b"}) {
		t.Errorf("list = %v, want [c b]", ids(list))
	}
	if n, _ := instanceA.Count(ctx, testAuth); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if _, err := instanceA.Get(ctx, testAuth, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted record should be not found, got %v", err)
	}
	if err := instanceA.Delete(ctx, testAuth, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}

	dash, err := instanceA.Dashboard(ctx, testAuth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.TotalCount != 2 || !equalIDs(ids(dash.Recent), []string{"c", "b"}) {
		t.Errorf("dashboard = %d %v, want 2 [c b]", dash.TotalCount, ids(dash.Recent))
	}
}

func TestLibraryService_DeleteRaceCountsAsDeleted(t *testing.T) {
	f := newLibraryFixture()
	seedRow(f.store, "a", "user-1", "Alpha", 100)
	ctx := context.Background()

	if _, err := f.svc.List(ctx, testAuth, domain.DefaultLibraryView()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Another instance removed the row between our lookup and our delete
	f.store.DeleteFn = func(string) error { return domain.ErrNotFound }

	if err := f.svc.Delete(ctx, testAuth, "a"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	ws, ok := f.reg.Get(testAuth.UserID)
	if !ok {
		t.Fatal("workspace should still be resident")
	}
	if _, found := ws.Find("a"); found {
		t.Error("record should be dropped from the workspace")
	}
}
