package driven

import (
	"context"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// SynthesisModel is a generative model that accepts text and an optional
// inline binary part. Failures are reported in the outcome, not as errors:
// callers switch on Status.
type SynthesisModel interface {
	// Generate issues exactly one request and returns its tagged outcome
	Generate(ctx context.Context, req domain.GenerateRequest) domain.SynthesisOutcome

	// Ping checks the provider accepts the configured key and model
	Ping(ctx context.Context) error

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the model client
	Close() error
}
