package driving

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// SchedulePreviewService resolves the upcoming schedule of one person
type SchedulePreviewService interface {
	// Preview returns days calendar days starting today. days is clamped to
	// [1, 21]. Malformed or unknown employee ids yield an empty preview.
	Preview(ctx context.Context, caller domain.AuthorizationContext, employeeID string, days int) (*domain.SchedulePreview, error)
}
