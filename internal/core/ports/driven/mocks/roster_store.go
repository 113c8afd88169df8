package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.RosterStore = (*MockRosterStore)(nil)

// MockRosterStore is an in-memory RosterStore for testing
type MockRosterStore struct {
	mu          sync.RWMutex
	assignments []domain.PlanAssignment
	overrides   []domain.DayOverride
	duties      []domain.Duty
	absences    []domain.Absence
	weeks       []domain.ISOWeekKey

	Err error
}

// NewMockRosterStore creates an empty MockRosterStore
func NewMockRosterStore() *MockRosterStore {
	return &MockRosterStore{}
}

// AddAssignment appends a weekly-plan entry
func (m *MockRosterStore) AddAssignment(a domain.PlanAssignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments = append(m.assignments, a)
}

// AddOverride appends a day override
func (m *MockRosterStore) AddOverride(o domain.DayOverride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides = append(m.overrides, o)
}

// AddDuty appends a duty
func (m *MockRosterStore) AddDuty(d domain.Duty) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duties = append(m.duties, d)
}

// AddAbsence appends an absence
func (m *MockRosterStore) AddAbsence(a domain.Absence) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.absences = append(m.absences, a)
}

func (m *MockRosterStore) PlanAssignments(ctx context.Context, employeeID string, week domain.ISOWeekKey) ([]domain.PlanAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weeks = append(m.weeks, week)
	if m.Err != nil {
		return nil, m.Err
	}

	var result []domain.PlanAssignment
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.Week == week {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockRosterStore) DayOverrides(ctx context.Context, employeeID string, from, to time.Time) ([]domain.DayOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var result []domain.DayOverride
	for _, o := range m.overrides {
		if o.EmployeeID == employeeID && inRange(o.Date, from, to) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockRosterStore) Duties(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Duty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var result []domain.Duty
	for _, d := range m.duties {
		if d.EmployeeID == employeeID && inRange(d.Date, from, to) {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *MockRosterStore) Absences(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Absence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	var result []domain.Absence
	for _, a := range m.absences {
		if a.EmployeeID == employeeID && a.Overlaps(from, to) {
			result = append(result, a)
		}
	}
	return result, nil
}

// Weeks returns the ISO weeks requested from PlanAssignments
func (m *MockRosterStore) Weeks() []domain.ISOWeekKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.ISOWeekKey(nil), m.weeks...)
}

func inRange(day, from, to time.Time) bool {
	d := domain.CalendarDay(day)
	return !d.Before(domain.CalendarDay(from)) && !d.After(domain.CalendarDay(to))
}
