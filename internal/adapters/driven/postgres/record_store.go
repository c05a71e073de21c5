package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore implements driven.RecordStore over the summaries table
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

const summaryColumns = `id, user_id, title, original_text, summary, category, created_at`

// Insert stores a row; the database assigns id and created_at
func (s *RecordStore) Insert(ctx context.Context, row *driven.SummaryRow) (*driven.SummaryRow, error) {
	query := `
		INSERT INTO summaries (user_id, title, original_text, summary, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + summaryColumns

	return scanSummary(s.db.QueryRowContext(ctx, query,
		row.UserID,
		row.Title,
		row.OriginalText,
		row.Summary,
		row.Category,
	))
}

// Get retrieves a row by ID
func (s *RecordStore) Get(ctx context.Context, id string) (*driven.SummaryRow, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE id = $1`

	row, err := scanSummary(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return row, err
}

// ListByOwner retrieves a user's rows in created_at order. limit <= 0 means no limit.
func (s *RecordStore) ListByOwner(ctx context.Context, ownerID string, order driven.RecordOrder, limit int) ([]*driven.SummaryRow, error) {
	direction := "DESC"
	if order == driven.OrderCreatedAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM summaries WHERE user_id = $1 ORDER BY created_at %s, id %s`,
		summaryColumns, direction, direction)
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*driven.SummaryRow
	for rows.Next() {
		row, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// CountByOwner returns the number of rows for a user
func (s *RecordStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries WHERE user_id = $1`, ownerID).Scan(&count)
	return count, err
}

// DeleteByID removes a row
func (s *RecordStore) DeleteByID(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func scanSummary(row rowScanner) (*driven.SummaryRow, error) {
	var r driven.SummaryRow
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.OriginalText,
		&r.Summary,
		&r.Category,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
