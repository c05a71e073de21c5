package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore implements driven.PreferenceStore using PostgreSQL.
// Scales are stored by name so the table stays readable.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// GetTypography returns the user's saved preference
func (s *PreferenceStore) GetTypography(ctx context.Context, userID string) (*domain.TypographyPreference, error) {
	var pref domain.TypographyPreference
	err := s.db.QueryRowContext(ctx,
		`SELECT font_size, line_height FROM preferences WHERE user_id = $1`, userID,
	).Scan(textScanner{&pref.FontScale}, textScanner{&pref.LineSpacing})
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// SaveTypography creates or replaces the user's preference
func (s *PreferenceStore) SaveTypography(ctx context.Context, userID string, pref domain.TypographyPreference) error {
	query := `
		INSERT INTO preferences (user_id, font_size, line_height, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			font_size = EXCLUDED.font_size,
			line_height = EXCLUDED.line_height,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, userID, pref.FontScale.String(), pref.LineSpacing.String())
	return err
}

// textScanner adapts an encoding.TextUnmarshaler to sql.Scanner
type textScanner struct {
	dst interface{ UnmarshalText([]byte) error }
}

func (t textScanner) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return t.dst.UnmarshalText([]byte(v))
	case []byte:
		return t.dst.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into typography value", src)
	}
}
