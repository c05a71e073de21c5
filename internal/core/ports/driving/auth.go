package driving

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// SessionObserver is notified when a session starts or ends
type SessionObserver func(event domain.SessionEvent)

// AuthService handles user authentication
type AuthService interface {
	// SignUp registers a new account and signs it in
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.LoginResponse, error)

	// Authenticate validates credentials and creates a session
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a JWT token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// RefreshToken generates a new token from a valid refresh token
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates a session
	Logout(ctx context.Context, token string) error

	// OnSessionChange registers an observer for sign-in and sign-out
	OnSessionChange(observer SessionObserver)

	// RequestPasswordReset sends a reset link if the email is registered.
	// Unknown emails succeed silently.
	RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) error

	// ConfirmPasswordReset sets a new password and ends every session of the user
	ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirm) error
}
