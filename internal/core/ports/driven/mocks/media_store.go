package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.MediaStore = (*MockMediaStore)(nil)

// MockMediaStore is an in-memory MediaStore for testing
type MockMediaStore struct {
	mu            sync.RWMutex
	videos        []*domain.TrainingVideo
	presentations []*domain.TrainingPresentation
	calls         int

	Err error
}

// NewMockMediaStore creates an empty MockMediaStore
func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{}
}

// AddVideo appends a video
func (m *MockMediaStore) AddVideo(v *domain.TrainingVideo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos = append(m.videos, v)
}

// AddPresentation appends a presentation
func (m *MockMediaStore) AddPresentation(p *domain.TrainingPresentation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presentations = append(m.presentations, p)
}

func (m *MockMediaStore) ListVideos(ctx context.Context) ([]*domain.TrainingVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*domain.TrainingVideo(nil), m.videos...), nil
}

func (m *MockMediaStore) ListPresentations(ctx context.Context) ([]*domain.TrainingPresentation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*domain.TrainingPresentation(nil), m.presentations...), nil
}

// Calls returns how many list calls were made
func (m *MockMediaStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
