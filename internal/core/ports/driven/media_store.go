package driven

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// MediaStore reads training media (PostgreSQL)
type MediaStore interface {
	// ListVideos returns every training video
	ListVideos(ctx context.Context) ([]*domain.TrainingVideo, error)

	// ListPresentations returns every training presentation
	ListPresentations(ctx context.Context) ([]*domain.TrainingPresentation, error)
}
