package domain

import (
	"slices"
	"time"
)

// ProcedureStatus is the lifecycle state of a procedure document (SOP)
type ProcedureStatus string

const (
	ProcedureStatusDraft     ProcedureStatus = "draft"
	ProcedureStatusReview    ProcedureStatus = "review"
	ProcedureStatusPublished ProcedureStatus = "published"
	ProcedureStatusArchived  ProcedureStatus = "archived"
)

// Procedure represents a procedure document or SOP
type Procedure struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Version   string          `json:"version"`
	Status    ProcedureStatus `json:"status"`
	Keywords  []string        `json:"keywords"`
	Body      string          `json:"body"`
	CreatedBy string          `json:"created_by"` // personnel id
	Members   []string        `json:"members"`    // personnel ids assigned to the document
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsArchived reports whether the procedure was retired
func (p *Procedure) IsArchived() bool {
	return p.Status == ProcedureStatusArchived
}

// IsPublished reports whether the procedure is visible to all staff
func (p *Procedure) IsPublished() bool {
	return p.Status == ProcedureStatusPublished
}

// InvolvesPerson reports whether personID created or is a member of the procedure
func (p *Procedure) InvolvesPerson(personID string) bool {
	if personID == "" {
		return false
	}
	return p.CreatedBy == personID || slices.Contains(p.Members, personID)
}

// ProcedureFilter selects procedures at the store level
type ProcedureFilter struct {
	// Statuses restricts to the given statuses (empty = any)
	Statuses []ProcedureStatus

	// ExcludeArchived drops archived procedures
	ExcludeArchived bool

	// InvolvingPerson restricts to procedures created by or assigned to this personnel id
	InvolvingPerson string
}

// Matches applies the filter to a single procedure
func (f ProcedureFilter) Matches(p *Procedure) bool {
	if f.ExcludeArchived && p.IsArchived() {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, p.Status) {
		return false
	}
	if f.InvolvingPerson != "" && !p.InvolvesPerson(f.InvolvingPerson) {
		return false
	}
	return true
}
