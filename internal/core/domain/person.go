package domain

// Person is an entry in the personnel directory
type Person struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Title      string    `json:"title"` // academic title, e.g. "Dr."
	RoleGroup  RoleGroup `json:"role_group"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	WorkPhone  string    `json:"work_phone"`
	WorkEmail  string    `json:"work_email"`

	// Private contact data is only exposed through a VisibilityDecision
	PrivatePhone       string `json:"-"`
	PrivateEmail       string `json:"-"`
	ShowPrivateContact bool   `json:"show_private_contact"`

	Active bool `json:"active"`
}

// DisplayName renders "Title First Last" without empty parts
func (p *Person) DisplayName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if p.Title != "" {
		return p.Title + " " + name
	}
	return name
}
