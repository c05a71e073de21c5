package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var (
	_ driven.ResetTokenStore = (*MockResetTokenStore)(nil)
	_ driven.ResetNotifier   = (*MockResetNotifier)(nil)
)

// MockResetTokenStore is a single-use in-memory grant store
type MockResetTokenStore struct {
	mu     sync.Mutex
	grants map[string]*domain.PasswordReset
}

// NewMockResetTokenStore creates a new MockResetTokenStore
func NewMockResetTokenStore() *MockResetTokenStore {
	return &MockResetTokenStore{grants: make(map[string]*domain.PasswordReset)}
}

func (m *MockResetTokenStore) Save(ctx context.Context, reset *domain.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[reset.Token] = reset
	return nil
}

func (m *MockResetTokenStore) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.grants[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.grants, token)
	return r, nil
}

// Pending returns the number of unconsumed grants
func (m *MockResetTokenStore) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grants)
}

// SentReset is one captured notification
type SentReset struct {
	Email string
	Link  string
}

// MockResetNotifier captures outgoing reset links
type MockResetNotifier struct {
	mu   sync.Mutex
	Sent []SentReset
	Err  error
}

func (m *MockResetNotifier) SendPasswordReset(ctx context.Context, email, link string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentReset{Email: email, Link: link})
	return nil
}
