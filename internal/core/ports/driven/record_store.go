package driven

import (
	"context"
	"time"
)

// RecordOrder orders ListByOwner results
type RecordOrder string

const (
	OrderCreatedDesc RecordOrder = "created_at_desc"
	OrderCreatedAsc  RecordOrder = "created_at_asc"
)

// SummaryRow is the stored shape of a summary record.
// ID and CreatedAt are assigned by the store on insert.
type SummaryRow struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Title        string    `db:"title"`
	OriginalText string    `db:"original_text"`
	Summary      string    `db:"summary"`
	Category     string    `db:"category"`
	CreatedAt    time.Time `db:"created_at"`
}

// RecordStore handles summary persistence (PostgreSQL)
type RecordStore interface {
	// Insert stores a new row and returns it with id and created_at filled in
	Insert(ctx context.Context, row *SummaryRow) (*SummaryRow, error)

	// Get retrieves a row by ID
	Get(ctx context.Context, id string) (*SummaryRow, error)

	// ListByOwner retrieves rows for a user. limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID string, order RecordOrder, limit int) ([]*SummaryRow, error)

	// CountByOwner returns the number of rows for a user
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// DeleteByID removes a row
	DeleteByID(ctx context.Context, id string) error
}
