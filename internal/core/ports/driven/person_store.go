package driven

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// PersonStore reads the personnel directory (PostgreSQL)
type PersonStore interface {
	// ListActive returns all active personnel
	ListActive(ctx context.Context) ([]*domain.Person, error)

	// Get retrieves a person by ID, returning domain.ErrNotFound if unknown
	Get(ctx context.Context, id string) (*domain.Person, error)
}
