package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var _ driven.RecordStore = (*MockRecordStore)(nil)

// MockRecordStore is an in-memory RecordStore that assigns ids and
// timestamps the way the database does.
type MockRecordStore struct {
	mu     sync.Mutex
	rows   map[string]*driven.SummaryRow
	nextID int
	clock  time.Time

	InsertFn func(row *driven.SummaryRow) (*driven.SummaryRow, error)
	DeleteFn func(id string) error
	ListFn   func(ownerID string) ([]*driven.SummaryRow, error)

	// Inserts counts Insert calls, including failed ones
	Inserts int
}

// NewMockRecordStore creates a new MockRecordStore
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{
		rows:  make(map[string]*driven.SummaryRow),
		clock: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *MockRecordStore) Insert(ctx context.Context, row *driven.SummaryRow) (*driven.SummaryRow, error) {
	m.mu.Lock()
	m.Inserts++
	m.mu.Unlock()
	if m.InsertFn != nil {
		return m.InsertFn(row)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	stored := *row
	stored.ID = fmt.Sprintf("rec-%03d", m.nextID)
	stored.CreatedAt = m.clock
	m.rows[stored.ID] = &stored
	out := stored
	return &out, nil
}

// Seed stores a row as-is, keeping its id and timestamp
func (m *MockRecordStore) Seed(row *driven.SummaryRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *row
	m.rows[row.ID] = &cp
}

func (m *MockRecordStore) Get(ctx context.Context, id string) (*driven.SummaryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (m *MockRecordStore) ListByOwner(ctx context.Context, ownerID string, order driven.RecordOrder, limit int) ([]*driven.SummaryRow, error) {
	if m.ListFn != nil {
		return m.ListFn(ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*driven.SummaryRow
	for _, row := range m.rows {
		if row.UserID == ownerID {
			cp := *row
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == driven.OrderCreatedAsc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockRecordStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (m *MockRecordStore) DeleteByID(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// Len returns the number of stored rows
func (m *MockRecordStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
