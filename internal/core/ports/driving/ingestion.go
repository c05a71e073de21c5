package driving

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// IngestRequest is one submission to the pipeline.
// Category overrides the extractor's classification when set.
type IngestRequest struct {
	Input    domain.RawInput
	Category domain.Category
}

// IngestionService turns raw input into a stored briefing
type IngestionService interface {
	// Extract runs only the extraction stage (preview and classification)
	Extract(ctx context.Context, auth *domain.AuthContext, input domain.RawInput) (*domain.ExtractedDocument, error)

	// Ingest runs extraction, synthesis and persistence as one operation
	Ingest(ctx context.Context, auth *domain.AuthContext, req IngestRequest) (*domain.SummaryRecord, error)
}
