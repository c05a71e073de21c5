package driven

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// ResetTokenStore holds pending password reset grants (Redis or PostgreSQL)
type ResetTokenStore interface {
	// Save stores a grant until its ExpiresAt
	Save(ctx context.Context, reset *domain.PasswordReset) error

	// Consume returns and removes a grant in one step.
	// Returns domain.ErrNotFound for unknown or already used tokens.
	Consume(ctx context.Context, token string) (*domain.PasswordReset, error)
}

// ResetNotifier delivers password reset links to users
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}
