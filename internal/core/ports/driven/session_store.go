package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// SessionStore persists login sessions. The redis implementation expires
// entries on its own; the postgres one relies on ExpiredSessionSweeper.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetByToken and GetByRefreshToken return domain.ErrSessionNotFound for
	// unknown or expired tokens.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)

	Delete(ctx context.Context, id string) error
	DeleteByToken(ctx context.Context, token string) error

	// DeleteByUser signs a user out everywhere, used after a password reset.
	DeleteByUser(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Session, error)
}

// ExpiredSessionSweeper is implemented by session stores whose entries do not
// expire on their own.
type ExpiredSessionSweeper interface {
	// DeleteExpired removes sessions that expired before the given time and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
