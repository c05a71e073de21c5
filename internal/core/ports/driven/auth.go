package driven

import "github.com/custodia-labs/briefvault/internal/core/domain"

// AuthAdapter covers password hashing and access-token signing.
// Sessions are persisted separately through SessionStore.
type AuthAdapter interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// GenerateToken signs claims into an opaque bearer token.
	GenerateToken(claims *domain.TokenClaims) (string, error)
	// ParseToken verifies a bearer token and returns its claims.
	// Expired tokens yield domain.ErrTokenExpired.
	ParseToken(token string) (*domain.TokenClaims, error)
}
