package domain

import "strings"

// EntityType names one result group of the global search
type EntityType string

const (
	EntityProcedures    EntityType = "procedures"
	EntityVideos        EntityType = "videos"
	EntityPresentations EntityType = "presentations"
	EntityPeople        EntityType = "people"
)

// AllEntityTypes lists the groups of a global search response
func AllEntityTypes() []EntityType {
	return []EntityType{EntityProcedures, EntityVideos, EntityPresentations, EntityPeople}
}

// Per-group limit bounds for the global search
const (
	DefaultSearchLimit = 6
	MinSearchLimit     = 1
	MaxSearchLimit     = 20
)

// ClampSearchLimit bounds a requested per-group limit to [MinSearchLimit, MaxSearchLimit]
func ClampSearchLimit(limit int) int {
	if limit < MinSearchLimit {
		return MinSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// HitMetadata carries type-specific rendering fields
type HitMetadata struct {
	Category  string          `json:"category,omitempty"`
	Version   string          `json:"version,omitempty"`
	Status    ProcedureStatus `json:"status,omitempty"`
	Platform  string          `json:"platform,omitempty"`
	MimeType  string          `json:"mime_type,omitempty"`
	RoleGroup RoleGroup       `json:"role_group,omitempty"`
	Position  string          `json:"position,omitempty"`
}

// Candidate is a record that passed its entity type's visibility predicate.
// It is built per request and never stored.
type Candidate struct {
	Type     EntityType
	ID       string
	Title    string
	Keywords []string
	Body     string
	Subtitle string
	URL      string
	Metadata HitMetadata

	// Person is set for personnel candidates so private fields can be
	// resolved again when the hit is rendered.
	Person *Person
}

// KeywordText joins the keyword list into one searchable string
func (c *Candidate) KeywordText() string {
	return strings.Join(c.Keywords, " ")
}

// VisibilityDecision is computed per candidate per caller and never cached
type VisibilityDecision struct {
	// Visible reports whether the record is a candidate at all
	Visible bool

	// PrivateContact grants private phone/email exposure (personnel only)
	PrivateContact bool
}

// ContactFields is the contact block of a personnel hit.
// Private fields are null unless the caller was granted them.
type ContactFields struct {
	WorkPhone    string  `json:"work_phone,omitempty"`
	WorkEmail    string  `json:"work_email,omitempty"`
	PrivatePhone *string `json:"private_phone"`
	PrivateEmail *string `json:"private_email"`
}

// ScoredHit is a ranked candidate ready for rendering
type ScoredHit struct {
	Type     EntityType     `json:"type"`
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
	URL      string         `json:"url"`
	Score    int            `json:"score"`
	Metadata HitMetadata    `json:"metadata"`
	Contact  *ContactFields `json:"contact,omitempty"`

	// SortKey is the folded title used as ranking tie-break
	SortKey string `json:"-"`
}

// ResultGroup is the ordered, truncated list of hits for one entity type
type ResultGroup struct {
	Type  EntityType
	Hits  []*ScoredHit
	Count int // length after truncation
}

// GlobalSearchResult is the payload of the global search endpoint
type GlobalSearchResult struct {
	Query  string                      `json:"query"`
	Groups map[EntityType][]*ScoredHit `json:"groups"`
	Counts map[EntityType]int          `json:"counts"`
}

// NewEmptySearchResult returns a result with every group present and empty
func NewEmptySearchResult(query string) *GlobalSearchResult {
	result := &GlobalSearchResult{
		Query:  query,
		Groups: make(map[EntityType][]*ScoredHit, len(AllEntityTypes())),
		Counts: make(map[EntityType]int, len(AllEntityTypes())),
	}
	for _, t := range AllEntityTypes() {
		result.Groups[t] = []*ScoredHit{}
		result.Counts[t] = 0
	}
	return result
}

// SetGroup stores a group in the result
func (r *GlobalSearchResult) SetGroup(g ResultGroup) {
	hits := g.Hits
	if hits == nil {
		hits = []*ScoredHit{}
	}
	r.Groups[g.Type] = hits
	r.Counts[g.Type] = g.Count
}
