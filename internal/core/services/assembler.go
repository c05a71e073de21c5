package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// RecordAssembler folds an extraction and its synthesis into a stored record
type RecordAssembler struct {
	store     driven.RecordStore
	textLimit int
}

// NewRecordAssembler creates an assembler. textLimit bounds the stored
// source text prefix; zero or less uses the default of 10000 characters.
func NewRecordAssembler(store driven.RecordStore, textLimit int) *RecordAssembler {
	if textLimit <= 0 {
		textLimit = domain.DefaultOriginalTextLimit
	}
	return &RecordAssembler{store: store, textLimit: textLimit}
}

// Assemble inserts exactly one row and returns the hydrated record with the
// store-assigned id and timestamp.
func (a *RecordAssembler) Assemble(
	ctx context.Context,
	user *domain.AuthContext,
	extracted *domain.ExtractedDocument,
	synthesis domain.SynthesisResult,
	category domain.Category,
) (*domain.SummaryRecord, error) {
	if user == nil || user.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !category.IsValid() {
		category = extracted.Category
	}

	original := domain.VisualOnlyPlaceholder
	if extracted.HasText() {
		original = truncateChars(extracted.NormalizedText, a.textLimit)
	}

	row := ToRow(&domain.SummaryRecord{
		OwnerID:      user.UserID,
		Title:        synthesis.Title,
		OriginalText: original,
		Summary:      synthesis.Briefing,
		Category:     category,
	})

	stored, err := a.store.Insert(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return FromRow(stored), nil
}

// ToRow maps a record to its stored shape
func ToRow(r *domain.SummaryRecord) *driven.SummaryRow {
	return &driven.SummaryRow{
		ID:           r.ID,
		UserID:       r.OwnerID,
		Title:        r.Title,
		OriginalText: r.OriginalText,
		Summary:      r.Summary,
		Category:     string(r.Category),
		CreatedAt:    r.CreatedAt,
	}
}

// FromRow maps a stored row back to a record
func FromRow(row *driven.SummaryRow) *domain.SummaryRecord {
	return &domain.SummaryRecord{
		ID:           row.ID,
		OwnerID:      row.UserID,
		Title:        row.Title,
		OriginalText: row.OriginalText,
		Summary:      row.Summary,
		CreatedAt:    row.CreatedAt,
		Category:     domain.Category(row.Category),
	}
}

func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
