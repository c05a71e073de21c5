package ai

import (
	"fmt"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Ensure Factory implements SynthesisModelFactory
var _ driven.SynthesisModelFactory = (*Factory)(nil)

// Factory creates synthesis models based on configuration
type Factory struct{}

// NewFactory creates a new synthesis model factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateSynthesisModel creates a model from settings.
// Unconfigured settings yield nil, nil so the service can start without one.
func (f *Factory) CreateSynthesisModel(settings *domain.ModelSettings) (driven.SynthesisModel, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.ModelProviderGemini:
		m, err := NewGemini(settings.APIKey, settings.Model, settings.BaseURL)
		if err != nil {
			return nil, err
		}
		return m, nil
	case domain.ModelProviderOpenAI:
		m, err := NewOpenAI(settings.APIKey, settings.Model, settings.BaseURL)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
