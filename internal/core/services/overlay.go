package services

import (
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/normalisers"
)

// PlanSlots returns the recurring weekly-plan workplaces of employeeID on day
func PlanSlots(employeeID string, day time.Time, assignments []domain.PlanAssignment) []domain.WorkplaceSlot {
	key := domain.ISODayKeyOf(day)
	var slots []domain.WorkplaceSlot
	for _, a := range assignments {
		if a.EmployeeID != employeeID || a.Week != key.ISOWeekKey || a.Weekday != key.Weekday {
			continue
		}
		slots = append(slots, domain.WorkplaceSlot{
			Date:        domain.CalendarDay(day),
			WorkplaceID: a.WorkplaceID,
			Label:       a.WorkplaceLabel,
			Source:      domain.WorkplaceFromPlan,
		})
	}
	return slots
}

// ApplyOverrides combines base with the overrides of employeeID on exactly day:
// removals first, then additions. base is not modified.
func ApplyOverrides(employeeID string, day time.Time, base []domain.WorkplaceSlot, overrides []domain.DayOverride) []domain.WorkplaceSlot {
	day = domain.CalendarDay(day)

	var removed, added []domain.DayOverride
	for _, o := range overrides {
		if o.EmployeeID != employeeID || !domain.CalendarDay(o.Date).Equal(day) {
			continue
		}
		switch o.Action {
		case domain.OverrideRemoved:
			removed = append(removed, o)
		case domain.OverrideAdded:
			added = append(added, o)
		}
	}

	slots := make([]domain.WorkplaceSlot, 0, len(base)+len(added))
	for _, slot := range base {
		if !slices.ContainsFunc(removed, func(o domain.DayOverride) bool {
			return sameWorkplace(slot.WorkplaceID, slot.Label, o.WorkplaceID, o.WorkplaceLabel)
		}) {
			slots = append(slots, slot)
		}
	}
	for _, o := range added {
		if slices.ContainsFunc(slots, func(s domain.WorkplaceSlot) bool {
			return sameWorkplace(s.WorkplaceID, s.Label, o.WorkplaceID, o.WorkplaceLabel)
		}) {
			continue
		}
		slots = append(slots, domain.WorkplaceSlot{
			Date:        day,
			WorkplaceID: o.WorkplaceID,
			Label:       o.WorkplaceLabel,
			Source:      domain.WorkplaceFromOverride,
		})
	}
	return slots
}

// sameWorkplace compares by id, falling back to the folded label when an id is missing
func sameWorkplace(idA, labelA, idB, labelB string) bool {
	if idA != "" && idB != "" {
		return idA == idB
	}
	return labelKey(labelA) == labelKey(labelB)
}

// NewPlaceholderSet folds placeholder labels into a lookup set
func NewPlaceholderSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[labelKey(l)] = struct{}{}
	}
	return set
}

// DedupeWorkplaces keeps the first slot per folded label and drops slots
// whose label is empty or a placeholder.
func DedupeWorkplaces(slots []domain.WorkplaceSlot, placeholders map[string]struct{}) []domain.WorkplaceSlot {
	seen := make(map[string]struct{}, len(slots))
	out := make([]domain.WorkplaceSlot, 0, len(slots))
	for _, slot := range slots {
		key := labelKey(slot.Label)
		if key == "" {
			continue
		}
		if _, ok := placeholders[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, slot)
	}
	return out
}

func labelKey(label string) string {
	return normalisers.Fold(strings.TrimSpace(label))
}

// AbsenceVisible: the person themself and admins always see absences; other
// callers only for role groups in their preference (nil means every group).
func AbsenceVisible(caller domain.AuthorizationContext, person *domain.Person) bool {
	if !authenticated(caller) || person == nil {
		return false
	}
	if caller.IsAdmin() || (caller.CallerID() != "" && caller.CallerID() == person.ID) {
		return true
	}
	groups := caller.VisibleRoleGroups()
	if groups == nil {
		return true
	}
	return slices.Contains(groups, person.RoleGroup)
}

// AbsencesOn returns the non-rejected absences covering day
func AbsencesOn(day time.Time, absences []domain.Absence) []domain.Absence {
	var out []domain.Absence
	for _, a := range absences {
		if a.Status == domain.AbsenceRejected || !a.Covers(day) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// DutiesOn returns the duties dated on day
func DutiesOn(day time.Time, duties []domain.Duty) []domain.Duty {
	day = domain.CalendarDay(day)
	var out []domain.Duty
	for _, d := range duties {
		if domain.CalendarDay(d.Date).Equal(day) {
			out = append(out, d)
		}
	}
	return out
}
