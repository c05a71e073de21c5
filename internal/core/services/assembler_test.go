package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven/mocks"
)

var testAuth = &domain.AuthContext{UserID: "user-1", Email: "reader@example.com", Name: "Reader", SessionID: "sess-1"}

func TestRecordAssembler_Assemble(t *testing.T) {
	store := mocks.NewMockRecordStore()
	a := NewRecordAssembler(store, 0)

	rec, err := a.Assemble(context.Background(), testAuth,
		&domain.ExtractedDocument{NormalizedText: "source text", Category: domain.CategoryText},
		domain.SynthesisResult{Briefing: "**Thesis.**", Title: "Source Review"},
		domain.CategoryText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Error("expected store-assigned id and timestamp")
	}
	if rec.OwnerID != "user-1" || rec.Title != "Source Review" || rec.Summary != "**Thesis.**" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.OriginalText != "source text" {
		t.Errorf("OriginalText = %q", rec.OriginalText)
	}
	if store.Inserts != 1 {
		t.Errorf("expected exactly one insert, got %d", store.Inserts)
	}
}

func TestRecordAssembler_TruncatesOriginalText(t *testing.T) {
	store := mocks.NewMockRecordStore()
	a := NewRecordAssembler(store, 10)

	rec, err := a.Assemble(context.Background(), testAuth,
		&domain.ExtractedDocument{NormalizedText: strings.Repeat("ü", 25)},
		domain.SynthesisResult{Briefing: "b", Title: "t"},
		domain.CategoryDocument)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.OriginalText != strings.Repeat("ü", 10) {
		t.Errorf("OriginalText = %q, want 10 characters", rec.OriginalText)
	}
}

func TestRecordAssembler_VisualOnlyPlaceholder(t *testing.T) {
	store := mocks.NewMockRecordStore()
	a := NewRecordAssembler(store, 0)

	rec, err := a.Assemble(context.Background(), testAuth,
		&domain.ExtractedDocument{IsVisual: true, Category: domain.CategoryDocument},
		domain.SynthesisResult{Briefing: "b", Title: "t"},
		"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.OriginalText != domain.VisualOnlyPlaceholder {
		t.Errorf("OriginalText = %q", rec.OriginalText)
	}
	if rec.Category != domain.CategoryDocument {
		t.Errorf("category should fall back to the extraction, got %q", rec.Category)
	}
}

func TestRecordAssembler_InsertFailure(t *testing.T) {
	store := mocks.NewMockRecordStore()
	store.InsertFn = func(*driven.SummaryRow) (*driven.SummaryRow, error) {
		return nil, errors.New("connection reset")
	}
	a := NewRecordAssembler(store, 0)

	_, err := a.Assemble(context.Background(), testAuth,
		&domain.ExtractedDocument{NormalizedText: "x"},
		domain.SynthesisResult{Briefing: "b", Title: "t"},
		domain.CategoryText)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestRowMapping(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.SummaryRecord{
		ID:           "rec-1",
		OwnerID:      "user-1",
		Title:        "T",
		OriginalText: "O",
		Summary:      "S",
		CreatedAt:    now,
		Category:     domain.CategoryDocument,
	}

	row := ToRow(rec)
	if row.UserID != "user-1" || row.OriginalText != "O" || row.Category != "Document" || !row.CreatedAt.Equal(now) {
		t.Errorf("unexpected row: %+v", row)
	}
	if back := FromRow(row); *back != *rec {
		t.Errorf("FromRow(ToRow(r)) = %+v, want %+v", back, rec)
	}
}
