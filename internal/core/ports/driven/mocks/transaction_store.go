package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var _ driven.TransactionStore = (*MockTransactionStore)(nil)

// MockTransactionStore is an in-memory TransactionStore. Like the table it
// stands in for, it rejects a second transaction for the same payment id.
type MockTransactionStore struct {
	mu     sync.Mutex
	txs    []*domain.Transaction
	orders map[string]*domain.CheckoutOrder

	SaveErr error
}

// NewMockTransactionStore creates a new MockTransactionStore
func NewMockTransactionStore() *MockTransactionStore {
	return &MockTransactionStore{orders: make(map[string]*domain.CheckoutOrder)}
}

func (m *MockTransactionStore) Save(ctx context.Context, tx *domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.txs {
		if tx.PaymentID != "" && existing.PaymentID == tx.PaymentID {
			return domain.ErrAlreadyExists
		}
	}
	m.txs = append(m.txs, tx)
	return nil
}

func (m *MockTransactionStore) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.txs {
		if tx.PaymentID == paymentID {
			return tx, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockTransactionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range m.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockTransactionStore) SaveOrder(ctx context.Context, order *domain.CheckoutOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.OrderID]; ok {
		return domain.ErrAlreadyExists
	}
	out := *order
	m.orders[order.OrderID] = &out
	return nil
}

func (m *MockTransactionStore) GetOrder(ctx context.Context, orderID string) (*domain.CheckoutOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *order
	return &out, nil
}
