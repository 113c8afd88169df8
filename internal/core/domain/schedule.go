package domain

import "time"

// DateLayout is the ISO calendar date format used on the wire
const DateLayout = "2006-01-02"

// Preview day-count bounds
const (
	DefaultPreviewDays = 14
	MinPreviewDays     = 1
	MaxPreviewDays     = 21
)

// ClampPreviewDays bounds a requested day count to [MinPreviewDays, MaxPreviewDays]
func ClampPreviewDays(days int) int {
	if days < MinPreviewDays {
		return MinPreviewDays
	}
	if days > MaxPreviewDays {
		return MaxPreviewDays
	}
	return days
}

// CalendarDay truncates t to midnight UTC of its calendar date in t's location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange returns count consecutive calendar days starting at start
func DayRange(start time.Time, count int) []time.Time {
	first := CalendarDay(start)
	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, first.AddDate(0, 0, i))
	}
	return days
}

// ISOWeekKey identifies one ISO-8601 week
type ISOWeekKey struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// ISODayKey identifies a weekday inside an ISO week (Weekday 1=Monday .. 7=Sunday)
type ISODayKey struct {
	ISOWeekKey
	Weekday int `json:"weekday"`
}

// ISODayKeyOf computes the (iso-year, iso-week, iso-weekday) key of a date
func ISODayKeyOf(day time.Time) ISODayKey {
	year, week := day.ISOWeek()
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return ISODayKey{ISOWeekKey: ISOWeekKey{Year: year, Week: week}, Weekday: weekday}
}

// PlanAssignment is one entry of a recurring weekly plan
type PlanAssignment struct {
	Week           ISOWeekKey `json:"week"`
	Weekday        int        `json:"weekday"`
	EmployeeID     string     `json:"employee_id"`
	WorkplaceID    string     `json:"workplace_id"`
	WorkplaceLabel string     `json:"workplace_label"`
}

// OverrideAction is the effect of a day-level override
type OverrideAction string

const (
	OverrideAdded   OverrideAction = "added"
	OverrideRemoved OverrideAction = "removed"
)

// DayOverride changes one employee's assignment to one workplace on one date
type DayOverride struct {
	ID             string         `json:"id"`
	Date           time.Time      `json:"date"`
	EmployeeID     string         `json:"employee_id"`
	WorkplaceID    string         `json:"workplace_id"`
	WorkplaceLabel string         `json:"workplace_label"`
	Action         OverrideAction `json:"action"`
}

// Duty is a roster duty (e.g. night or on-call shift) on one date
type Duty struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	EmployeeID string    `json:"employee_id"`
	Code       string    `json:"code"`
	Label      string    `json:"label"`
}

// AbsenceStatus is the approval state of an absence request
type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// Absence is a vacation/sick/training window with inclusive start and end dates
type Absence struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	Type       string        `json:"type"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Status     AbsenceStatus `json:"status"`
	Note       string        `json:"note,omitempty"`
}

// Covers reports whether the absence includes the calendar day
func (a *Absence) Covers(day time.Time) bool {
	d := CalendarDay(day)
	return !d.Before(CalendarDay(a.Start)) && !d.After(CalendarDay(a.End))
}

// Overlaps reports whether the absence intersects [from, to] (inclusive)
func (a *Absence) Overlaps(from, to time.Time) bool {
	return !CalendarDay(a.End).Before(CalendarDay(from)) && !CalendarDay(a.Start).After(CalendarDay(to))
}

// WorkplaceSource tells where a resolved workplace came from
type WorkplaceSource string

const (
	WorkplaceFromPlan     WorkplaceSource = "plan"
	WorkplaceFromOverride WorkplaceSource = "override"
)

// WorkplaceSlot is one effective workplace assignment on one date
type WorkplaceSlot struct {
	Date        time.Time
	WorkplaceID string
	Label       string
	Source      WorkplaceSource
}

// ScheduleDay is the resolved schedule of one employee for one date
type ScheduleDay struct {
	Date       time.Time
	Duties     []Duty
	Workplaces []WorkplaceSlot
	Absences   []Absence
}

// DutyEntry is the wire form of a duty
type DutyEntry struct {
	Date  string `json:"date"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

// WorkplaceEntry is the wire form of a resolved workplace
type WorkplaceEntry struct {
	Date        string          `json:"date"`
	WorkplaceID string          `json:"workplace_id"`
	Label       string          `json:"label"`
	Source      WorkplaceSource `json:"source"`
}

// AbsenceEntry is the wire form of an absence
type AbsenceEntry struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Status  AbsenceStatus `json:"status"`
	Visible bool          `json:"visible"`
}

// PreviewVisibility reports which optional sections were exposed
type PreviewVisibility struct {
	Absences bool `json:"absences"`
}

// SchedulePreview is the payload of the person preview endpoint
type SchedulePreview struct {
	Days       []string          `json:"days"`
	Duties     []DutyEntry       `json:"duties"`
	Workplaces []WorkplaceEntry  `json:"workplaces"`
	Absences   []AbsenceEntry    `json:"absences"`
	Visibility PreviewVisibility `json:"visibility"`
}

// NewEmptyPreview returns a well-formed preview with no entries
func NewEmptyPreview(days []time.Time) *SchedulePreview {
	p := &SchedulePreview{
		Days:       make([]string, 0, len(days)),
		Duties:     []DutyEntry{},
		Workplaces: []WorkplaceEntry{},
		Absences:   []AbsenceEntry{},
	}
	for _, d := range days {
		p.Days = append(p.Days, d.Format(DateLayout))
	}
	return p
}

// NewSchedulePreview flattens ordered schedule days into the wire form.
// Absences spanning several days are listed once, in first-seen order.
func NewSchedulePreview(days []ScheduleDay, absencesVisible bool) *SchedulePreview {
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	p := NewEmptyPreview(dates)
	p.Visibility.Absences = absencesVisible

	seen := make(map[string]struct{})
	for _, day := range days {
		date := day.Date.Format(DateLayout)
		for _, duty := range day.Duties {
			p.Duties = append(p.Duties, DutyEntry{Date: date, Code: duty.Code, Label: duty.Label})
		}
		for _, slot := range day.Workplaces {
			p.Workplaces = append(p.Workplaces, WorkplaceEntry{
				Date:        date,
				WorkplaceID: slot.WorkplaceID,
				Label:       slot.Label,
				Source:      slot.Source,
			})
		}
		if !absencesVisible {
			continue
		}
		for _, a := range day.Absences {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			p.Absences = append(p.Absences, AbsenceEntry{
				ID:      a.ID,
				Type:    a.Type,
				Start:   a.Start.Format(DateLayout),
				End:     a.End.Format(DateLayout),
				Status:  a.Status,
				Visible: true,
			})
		}
	}
	return p
}
