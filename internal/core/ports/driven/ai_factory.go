package driven

import "github.com/custodia-labs/briefvault/internal/core/domain"

// SynthesisModelFactory creates synthesis models from configuration
type SynthesisModelFactory interface {
	// CreateSynthesisModel builds a model for the given settings.
	// Returns nil, nil when the settings are not configured.
	CreateSynthesisModel(settings *domain.ModelSettings) (SynthesisModel, error)
}
