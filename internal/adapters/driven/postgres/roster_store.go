package postgres

import (
	"context"
	"time"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RosterStore = (*RosterStore)(nil)

// RosterStore implements driven.RosterStore using PostgreSQL
type RosterStore struct {
	db *DB
}

// NewRosterStore creates a new RosterStore
func NewRosterStore(db *DB) *RosterStore {
	return &RosterStore{db: db}
}

// PlanAssignments returns the weekly-plan entries of an employee for one ISO week
func (s *RosterStore) PlanAssignments(ctx context.Context, employeeID string, week domain.ISOWeekKey) ([]domain.PlanAssignment, error) {
	query := `
		SELECT e.iso_year, e.iso_week, e.weekday, e.employee_id, e.workplace_id, w.label
		FROM weekly_plan_entries e
		JOIN workplaces w ON w.id = e.workplace_id
		WHERE e.employee_id = $1 AND e.iso_year = $2 AND e.iso_week = $3
		ORDER BY e.weekday, w.label, e.workplace_id
	`

	rows, err := s.db.QueryContext(ctx, query, employeeID, week.Year, week.Week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.PlanAssignment
	for rows.Next() {
		var a domain.PlanAssignment
		if err := rows.Scan(&a.Week.Year, &a.Week.Week, &a.Weekday, &a.EmployeeID, &a.WorkplaceID, &a.WorkplaceLabel); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// DayOverrides returns the overrides naming the employee within [from, to]
func (s *RosterStore) DayOverrides(ctx context.Context, employeeID string, from, to time.Time) ([]domain.DayOverride, error) {
	query := `
		SELECT o.id, o.date, o.employee_id, o.workplace_id, w.label, o.action
		FROM day_overrides o
		JOIN workplaces w ON w.id = o.workplace_id
		WHERE o.employee_id = $1 AND o.date BETWEEN $2 AND $3
		ORDER BY o.date, o.id
	`

	rows, err := s.db.QueryContext(ctx, query, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []domain.DayOverride
	for rows.Next() {
		var o domain.DayOverride
		if err := rows.Scan(&o.ID, &o.Date, &o.EmployeeID, &o.WorkplaceID, &o.WorkplaceLabel, &o.Action); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return overrides, nil
}

// Duties returns the duties of the employee within [from, to]
func (s *RosterStore) Duties(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Duty, error) {
	query := `
		SELECT id, date, employee_id, code, label
		FROM duties
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, code, id
	`

	rows, err := s.db.QueryContext(ctx, query, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var duties []domain.Duty
	for rows.Next() {
		var d domain.Duty
		if err := rows.Scan(&d.ID, &d.Date, &d.EmployeeID, &d.Code, &d.Label); err != nil {
			return nil, err
		}
		duties = append(duties, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return duties, nil
}

// Absences returns the absences of the employee overlapping [from, to], any status
func (s *RosterStore) Absences(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Absence, error) {
	query := `
		SELECT id, employee_id, type, start_date, end_date, status, note
		FROM absences
		WHERE employee_id = $1 AND end_date >= $2 AND start_date <= $3
		ORDER BY start_date, id
	`

	rows, err := s.db.QueryContext(ctx, query, employeeID, dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var absences []domain.Absence
	for rows.Next() {
		var a domain.Absence
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Type, &a.Start, &a.End, &a.Status, &a.Note); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return absences, nil
}

// dateArg passes a calendar day as an ISO date so the session time zone cannot shift it
func dateArg(t time.Time) string {
	return domain.CalendarDay(t).Format(domain.DateLayout)
}
