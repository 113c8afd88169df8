package driven

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// CandidateSource fetches the search candidates of one entity type for a caller.
// Its visibility predicate is applied before any text matching, so records the
// caller may not see are never scored or counted.
type CandidateSource interface {
	// Type is the entity type (result group) this source feeds
	Type() domain.EntityType

	// FetchCandidates returns the caller-visible candidates. An entitlement
	// miss yields an empty list, not an error.
	FetchCandidates(ctx context.Context, caller domain.AuthorizationContext) ([]*domain.Candidate, error)
}
