package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// RosterStore reads weekly plans, day overrides, duties and absences (PostgreSQL).
// All date bounds are inclusive calendar days.
type RosterStore interface {
	// PlanAssignments returns the recurring weekly-plan entries of an employee for one ISO week
	PlanAssignments(ctx context.Context, employeeID string, week domain.ISOWeekKey) ([]domain.PlanAssignment, error)

	// DayOverrides returns the day-level overrides naming the employee within [from, to]
	DayOverrides(ctx context.Context, employeeID string, from, to time.Time) ([]domain.DayOverride, error)

	// Duties returns the roster duties of the employee within [from, to]
	Duties(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Duty, error)

	// Absences returns absences of the employee overlapping [from, to], any status
	Absences(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Absence, error)
}
