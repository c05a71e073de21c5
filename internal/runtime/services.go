package runtime

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Services holds the synthesis model, which can be replaced while the
// server runs. Safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	config *domain.RuntimeConfig
	model  driven.SynthesisModel
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	if config == nil {
		config = &domain.RuntimeConfig{}
	}
	return &Services{config: config}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// SynthesisModel returns the current model (may be nil)
func (s *Services) SynthesisModel() driven.SynthesisModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetSynthesisModel replaces the model, closing the previous one
func (s *Services) SetSynthesisModel(model driven.SynthesisModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil && s.model != model {
		_ = s.model.Close()
	}
	s.model = model
	s.config.SetSynthesisAvailable(model != nil)
}

// ValidateAndSetSynthesis pings the model before installing it.
// A model that fails the ping is closed and the current one is kept.
func (s *Services) ValidateAndSetSynthesis(ctx context.Context, model driven.SynthesisModel) error {
	if model == nil {
		s.SetSynthesisModel(nil)
		return nil
	}

	if err := model.Ping(ctx); err != nil {
		_ = model.Close()
		return err
	}

	s.SetSynthesisModel(model)
	return nil
}

// Close shuts down the model
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.model != nil {
		err = s.model.Close()
		s.model = nil
	}
	s.config.SetSynthesisAvailable(false)
	return err
}
