package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
	"github.com/custodia-labs/briefvault/internal/core/ports/driving"
	"github.com/custodia-labs/briefvault/internal/render"
)

// Ensure briefingService implements BriefingService
var _ driving.BriefingService = (*briefingService)(nil)

// briefingService implements the BriefingService interface
type briefingService struct {
	library driving.LibraryService
	prefs   driven.PreferenceStore
}

// NewBriefingService creates a new BriefingService
func NewBriefingService(library driving.LibraryService, prefs driven.PreferenceStore) driving.BriefingService {
	return &briefingService{library: library, prefs: prefs}
}

// Render formats a record's briefing for display
func (s *briefingService) Render(ctx context.Context, auth *domain.AuthContext, id string, pref *domain.TypographyPreference) (*domain.RenderedBriefing, error) {
	rec, err := s.library.Get(ctx, auth, id)
	if err != nil {
		return nil, err
	}

	var p domain.TypographyPreference
	if pref != nil {
		if !pref.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		p = *pref
	} else if p, err = s.Typography(ctx, auth); err != nil {
		return nil, err
	}

	out := render.Render(rec.Summary, p)
	out.RecordID = rec.ID
	out.Title = rec.Title
	return out, nil
}

// Typography returns the saved preference, or the default when none is saved
func (s *briefingService) Typography(ctx context.Context, auth *domain.AuthContext) (domain.TypographyPreference, error) {
	if auth == nil {
		return domain.TypographyPreference{}, domain.ErrUnauthorized
	}
	pref, err := s.prefs.GetTypography(ctx, auth.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultTypography(), nil
	}
	if err != nil {
		return domain.TypographyPreference{}, err
	}
	return *pref, nil
}

// SetTypography saves the user's preference
func (s *briefingService) SetTypography(ctx context.Context, auth *domain.AuthContext, pref domain.TypographyPreference) error {
	if auth == nil {
		return domain.ErrUnauthorized
	}
	if !pref.IsValid() {
		return domain.ErrInvalidInput
	}
	return s.prefs.SaveTypography(ctx, auth.UserID, pref)
}
