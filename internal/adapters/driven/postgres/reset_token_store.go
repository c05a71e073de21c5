package postgres

import (
	"context"
	"database/sql"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResetTokenStore = (*ResetTokenStore)(nil)

// ResetTokenStore implements driven.ResetTokenStore using PostgreSQL
type ResetTokenStore struct {
	db *DB
}

// NewResetTokenStore creates a new ResetTokenStore
func NewResetTokenStore(db *DB) *ResetTokenStore {
	return &ResetTokenStore{db: db}
}

// Save stores a grant. Expired grants are swept on the way in.
func (s *ResetTokenStore) Save(ctx context.Context, reset *domain.PasswordReset) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM password_resets WHERE expires_at < NOW()`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO password_resets (token, user_id, email, redirect_to, expires_at)
			VALUES ($1, $2, $3, $4, $5)
		`, reset.Token, reset.UserID, reset.Email, reset.RedirectTo, reset.ExpiresAt)
		return err
	})
}

// Consume deletes and returns a grant in one statement
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM password_resets WHERE token = $1
		RETURNING token, user_id, email, redirect_to, expires_at
	`, token).Scan(&reset.Token, &reset.UserID, &reset.Email, &reset.RedirectTo, &reset.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}
