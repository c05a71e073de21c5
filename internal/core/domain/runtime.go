package domain

import "sync"

// RuntimeConfig tracks which services are available at runtime.
// This is determined at startup and can be updated when the synthesis model changes.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	SessionBackend string // "redis" or "postgres"

	synthesisAvailable bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend: sessionBackend,
	}
}

// SynthesisAvailable returns whether a synthesis model is configured
func (c *RuntimeConfig) SynthesisAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synthesisAvailable
}

// SetSynthesisAvailable updates the synthesis availability flag
func (c *RuntimeConfig) SetSynthesisAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synthesisAvailable = available
}
