package driving

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// GlobalSearchService searches every record store at once and ranks the matches per entity type
type GlobalSearchService interface {
	// Search tokenizes query, fans out to every candidate source and returns
	// the ranked groups. limit is clamped to [1, 20]. Any source failure fails
	// the whole call.
	Search(ctx context.Context, caller domain.AuthorizationContext, query string, limit int) (*domain.GlobalSearchResult, error)
}
