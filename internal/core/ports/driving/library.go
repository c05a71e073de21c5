package driving

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// LibraryService exposes a user's stored briefings
type LibraryService interface {
	// List returns the user's records after search, filter and sort
	List(ctx context.Context, auth *domain.AuthContext, state domain.LibraryViewState) ([]*domain.SummaryRecord, error)

	// Get retrieves one of the user's records
	Get(ctx context.Context, auth *domain.AuthContext, id string) (*domain.SummaryRecord, error)

	// Delete removes one of the user's records
	Delete(ctx context.Context, auth *domain.AuthContext, id string) error

	// Count returns the user's total record count
	Count(ctx context.Context, auth *domain.AuthContext) (int, error)

	// Dashboard returns the total count and the most recent records
	Dashboard(ctx context.Context, auth *domain.AuthContext) (*domain.Dashboard, error)
}

// BriefingService prepares briefings for reading
type BriefingService interface {
	// Render formats a record's briefing. A nil pref uses the saved preference.
	Render(ctx context.Context, auth *domain.AuthContext, id string, pref *domain.TypographyPreference) (*domain.RenderedBriefing, error)

	// Typography returns the user's saved preference or the default
	Typography(ctx context.Context, auth *domain.AuthContext) (domain.TypographyPreference, error)

	// SetTypography saves the user's preference
	SetTypography(ctx context.Context, auth *domain.AuthContext, pref domain.TypographyPreference) error
}
