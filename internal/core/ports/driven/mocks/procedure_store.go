package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.ProcedureStore = (*MockProcedureStore)(nil)

// MockProcedureStore is an in-memory ProcedureStore for testing.
// Set Err to make every read fail.
type MockProcedureStore struct {
	mu         sync.RWMutex
	procedures []*domain.Procedure
	filters    []domain.ProcedureFilter

	Err error
}

// NewMockProcedureStore creates a store seeded with procedures
func NewMockProcedureStore(procedures ...*domain.Procedure) *MockProcedureStore {
	return &MockProcedureStore{procedures: procedures}
}

// Add appends a procedure
func (m *MockProcedureStore) Add(p *domain.Procedure) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.procedures = append(m.procedures, p)
}

func (m *MockProcedureStore) List(ctx context.Context, filter domain.ProcedureFilter) ([]*domain.Procedure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append(m.filters, filter)
	if m.Err != nil {
		return nil, m.Err
	}

	var result []*domain.Procedure
	for _, p := range m.procedures {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

// Filters returns the filters received so far
func (m *MockProcedureStore) Filters() []domain.ProcedureFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.ProcedureFilter(nil), m.filters...)
}
