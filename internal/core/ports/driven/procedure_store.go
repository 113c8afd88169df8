package driven

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// ProcedureStore reads procedure documents (PostgreSQL)
type ProcedureStore interface {
	// List returns the procedures matching the filter. Members are populated.
	List(ctx context.Context, filter domain.ProcedureFilter) ([]*domain.Procedure, error)
}
