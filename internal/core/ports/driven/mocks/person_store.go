package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.PersonStore = (*MockPersonStore)(nil)

// MockPersonStore is an in-memory PersonStore for testing
type MockPersonStore struct {
	mu     sync.RWMutex
	people []*domain.Person
	calls  int

	Err error
}

// NewMockPersonStore creates a store seeded with people
func NewMockPersonStore(people ...*domain.Person) *MockPersonStore {
	return &MockPersonStore{people: people}
}

// Add appends a person
func (m *MockPersonStore) Add(p *domain.Person) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people = append(m.people, p)
}

func (m *MockPersonStore) ListActive(ctx context.Context) ([]*domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}

	var result []*domain.Person
	for _, p := range m.people {
		if p.Active {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockPersonStore) Get(ctx context.Context, id string) (*domain.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.people {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Calls returns how many reads were made
func (m *MockPersonStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
