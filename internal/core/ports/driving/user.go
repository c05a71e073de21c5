package driving

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// UserService provides read access to account profiles
type UserService interface {
	// Get retrieves a user's profile
	Get(ctx context.Context, id string) (*domain.UserSummary, error)
}
