package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var _ driven.SynthesisModel = (*MockSynthesisModel)(nil)

// MockSynthesisModel records every request and answers through GenerateFn.
// Without GenerateFn it returns SynthesisOk with Reply.
type MockSynthesisModel struct {
	mu       sync.Mutex
	requests []domain.GenerateRequest

	GenerateFn func(req domain.GenerateRequest) domain.SynthesisOutcome
	Reply      string
	PingErr    error
	Name       string
	Closed     bool
}

// NewMockSynthesisModel creates a model that always answers reply
func NewMockSynthesisModel(reply string) *MockSynthesisModel {
	return &MockSynthesisModel{Reply: reply, Name: "mock-model"}
}

func (m *MockSynthesisModel) Generate(ctx context.Context, req domain.GenerateRequest) domain.SynthesisOutcome {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.GenerateFn != nil {
		return m.GenerateFn(req)
	}
	return domain.SynthesisOk(m.Reply)
}

func (m *MockSynthesisModel) Ping(ctx context.Context) error { return m.PingErr }

func (m *MockSynthesisModel) Model() string { return m.Name }

func (m *MockSynthesisModel) Close() error {
	m.Closed = true
	return nil
}

// Requests returns a copy of all requests seen so far
func (m *MockSynthesisModel) Requests() []domain.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.GenerateRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the number of Generate calls
func (m *MockSynthesisModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
