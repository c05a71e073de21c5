package driven

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// PreferenceStore persists per-user reading preferences
type PreferenceStore interface {
	// GetTypography returns domain.ErrNotFound when the user never saved one
	GetTypography(ctx context.Context, userID string) (*domain.TypographyPreference, error)

	// SaveTypography creates or replaces the user's preference
	SaveTypography(ctx context.Context, userID string, pref domain.TypographyPreference) error
}
