package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClampPreviewDays(t *testing.T) {
	tests := []struct {
		in, out int
	}{
		{0, 1},
		{1, 1},
		{14, 14},
		{21, 21},
		{22, 21},
	}

	for _, tt := range tests {
		if got := ClampPreviewDays(tt.in); got != tt.out {
			t.Errorf("ClampPreviewDays(%d) = %d, want %d", tt.in, got, tt.out)
		}
	}
}

func TestISODayKeyOf(t *testing.T) {
	tests := []struct {
		name     string
		day      time.Time
		expected ISODayKey
	}{
		{"monday", date(2026, time.October, 12), ISODayKey{ISOWeekKey{2026, 42}, 1}},
		{"sunday maps to 7", date(2026, time.October, 18), ISODayKey{ISOWeekKey{2026, 42}, 7}},
		{"new year belongs to previous iso year", date(2027, time.January, 1), ISODayKey{ISOWeekKey{2026, 53}, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISODayKeyOf(tt.day); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestDayRange(t *testing.T) {
	start := time.Date(2026, time.October, 30, 15, 30, 0, 0, time.UTC)
	days := DayRange(start, 3)

	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[0].Equal(date(2026, time.October, 30)) {
		t.Errorf("expected first day truncated to midnight, got %v", days[0])
	}
	if !days[2].Equal(date(2026, time.November, 1)) {
		t.Errorf("expected range to cross month, got %v", days[2])
	}
}

func TestAbsenceCoversAndOverlaps(t *testing.T) {
	a := &Absence{Start: date(2026, time.October, 10), End: date(2026, time.October, 12)}

	if !a.Covers(date(2026, time.October, 10)) || !a.Covers(date(2026, time.October, 12)) {
		t.Error("expected inclusive bounds")
	}
	if a.Covers(date(2026, time.October, 13)) {
		t.Error("expected day after end to be outside")
	}
	if !a.Overlaps(date(2026, time.October, 12), date(2026, time.October, 20)) {
		t.Error("expected overlap on shared end day")
	}
	if a.Overlaps(date(2026, time.October, 13), date(2026, time.October, 20)) {
		t.Error("expected no overlap after end")
	}
}

func TestNewSchedulePreview_MaskedAbsences(t *testing.T) {
	days := []ScheduleDay{
		{
			Date:       date(2026, time.October, 12),
			Workplaces: []WorkplaceSlot{{WorkplaceID: "w1", Label: "OP 1", Source: WorkplaceFromPlan}},
			Absences:   []Absence{{ID: "a1", Type: "vacation", Start: date(2026, time.October, 12), End: date(2026, time.October, 13)}},
		},
		{
			Date:     date(2026, time.October, 13),
			Absences: []Absence{{ID: "a1", Type: "vacation", Start: date(2026, time.October, 12), End: date(2026, time.October, 13)}},
		},
	}

	masked := NewSchedulePreview(days, false)
	if len(masked.Absences) != 0 {
		t.Errorf("expected masked absences, got %d", len(masked.Absences))
	}
	if masked.Visibility.Absences {
		t.Error("expected visibility flag false")
	}
	if len(masked.Workplaces) != 1 || masked.Workplaces[0].Date != "2026-10-12" {
		t.Errorf("unexpected workplaces %+v", masked.Workplaces)
	}

	visible := NewSchedulePreview(days, true)
	if len(visible.Absences) != 1 {
		t.Errorf("expected multi-day absence listed once, got %d", len(visible.Absences))
	}
	if len(visible.Days) != 2 {
		t.Errorf("expected 2 days, got %d", len(visible.Days))
	}
}
