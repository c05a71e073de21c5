package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var _ driven.PreferenceStore = (*MockPreferenceStore)(nil)

// MockPreferenceStore keeps typography preferences per user
type MockPreferenceStore struct {
	mu    sync.Mutex
	prefs map[string]domain.TypographyPreference
}

// NewMockPreferenceStore creates a new MockPreferenceStore
func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{prefs: make(map[string]domain.TypographyPreference)}
}

func (m *MockPreferenceStore) GetTypography(ctx context.Context, userID string) (*domain.TypographyPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *MockPreferenceStore) SaveTypography(ctx context.Context, userID string, pref domain.TypographyPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[userID] = pref
	return nil
}
