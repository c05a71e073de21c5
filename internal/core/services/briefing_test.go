package services

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven/mocks"
)

func newBriefingFixture() (*mocks.MockRecordStore, *mocks.MockPreferenceStore, *briefingService) {
	store := mocks.NewMockRecordStore()
	prefs := mocks.NewMockPreferenceStore()
	lib := NewLibraryService(store, mocks.NewMockUserStore(), NewWorkspaceRegistry(store, nil, WorkspaceRegistryConfig{}), nil)
	return store, prefs, NewBriefingService(lib, prefs).(*briefingService)
}

func TestBriefingService_Render(t *testing.T) {
	store, _, svc := newBriefingFixture()
	store.Seed(&driven.SummaryRow{
		ID:      "rec-1",
		UserID:  "user-1",
		Title:   "Risk Memo",
		Summary: "**Thesis.**\n- **Risk**: high",
	})

	out, err := svc.Render(context.Background(), testAuth, "rec-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RecordID != "rec-1" || out.Title != "Risk Memo" {
		t.Errorf("unexpected header: %+v", out)
	}
	if out.Preference != domain.DefaultTypography() {
		t.Errorf("expected default typography, got %+v", out.Preference)
	}
	if len(out.Lines) != 2 || out.Lines[1].Kind != domain.LineBullet {
		t.Errorf("unexpected lines: %+v", out.Lines)
	}
}

func TestBriefingService_RenderUsesSavedPreference(t *testing.T) {
	store, prefs, svc := newBriefingFixture()
	store.Seed(&driven.SummaryRow{ID: "rec-1", UserID: "user-1", Summary: "x"})
	saved := domain.TypographyPreference{FontScale: domain.FontLarge, LineSpacing: domain.SpacingTight}
	_ = prefs.SaveTypography(context.Background(), "user-1", saved)

	out, err := svc.Render(context.Background(), testAuth, "rec-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Preference != saved {
		t.Errorf("Preference = %+v, want %+v", out.Preference, saved)
	}

	override := domain.TypographyPreference{FontScale: domain.FontSmall, LineSpacing: domain.SpacingLoose}
	out, _ = svc.Render(context.Background(), testAuth, "rec-1", &override)
	if out.Preference != override {
		t.Errorf("explicit preference should win, got %+v", out.Preference)
	}
}

func TestBriefingService_RenderForeignRecord(t *testing.T) {
	store, _, svc := newBriefingFixture()
	store.Seed(&driven.SummaryRow{ID: "rec-x", UserID: "someone-else", Summary: "secret"})

	if _, err := svc.Render(context.Background(), testAuth, "rec-x", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBriefingService_Typography(t *testing.T) {
	_, _, svc := newBriefingFixture()
	ctx := context.Background()

	got, err := svc.Typography(ctx, testAuth)
	if err != nil || got != domain.DefaultTypography() {
		t.Errorf("Typography = %+v, %v; want default", got, err)
	}

	pref := domain.TypographyPreference{FontScale: domain.FontXLarge, LineSpacing: domain.SpacingNormal}
	if err := svc.SetTypography(ctx, testAuth, pref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := svc.Typography(ctx, testAuth); got != pref {
		t.Errorf("Typography = %+v, want %+v", got, pref)
	}

	bad := domain.TypographyPreference{FontScale: 8, LineSpacing: domain.SpacingNormal}
	if err := svc.SetTypography(ctx, testAuth, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
