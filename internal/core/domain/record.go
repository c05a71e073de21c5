package domain

import "time"

// Category classifies the origin of a record
type Category string

const (
	CategoryText     Category = "Text"
	CategoryDocument Category = "Document"
)

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	return c == CategoryText || c == CategoryDocument
}

const (
	// DefaultOriginalTextLimit bounds the stored source text prefix
	DefaultOriginalTextLimit = 10000

	// VisualOnlyPlaceholder is stored as original text when a document had no usable text
	VisualOnlyPlaceholder = "Rich Media Document"
)

// SummaryRecord is a persisted briefing owned by one user.
// Records are immutable once created.
type SummaryRecord struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"user_id"`
	Title        string    `json:"title"`
	OriginalText string    `json:"original_text"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
	Category     Category  `json:"category"`
}

// OwnedBy checks if the record belongs to the given user
func (r *SummaryRecord) OwnedBy(userID string) bool {
	return r != nil && userID != "" && r.OwnerID == userID
}

// SynthesisResult is the model output folded into a record
type SynthesisResult struct {
	Briefing string `json:"briefing"`
	Title    string `json:"title"`
}

// Dashboard is the landing overview of a user's library
type Dashboard struct {
	User       *UserSummary     `json:"user"`
	TotalCount int              `json:"total_count"`
	Recent     []*SummaryRecord `json:"recent"`
}
