package services

import "github.com/custodia-labs/wardhub-core/internal/core/domain"

const (
	personAnna  = "0b7e4c1a-6a53-4a8e-9d43-1f6c0e1a2b01"
	personBernd = "0b7e4c1a-6a53-4a8e-9d43-1f6c0e1a2b02"
	personCarla = "0b7e4c1a-6a53-4a8e-9d43-1f6c0e1a2b03"
)

func memberCaller(personID string, caps ...domain.Capability) *domain.AuthContext {
	return &domain.AuthContext{
		UserID:       "user-" + personID,
		PersonID:     personID,
		Role:         domain.RoleMember,
		Capabilities: caps,
	}
}

func adminCaller() *domain.AuthContext {
	return &domain.AuthContext{UserID: "user-admin", PersonID: personCarla, Role: domain.RoleAdmin}
}

func testPeople() []*domain.Person {
	return []*domain.Person{
		{
			ID: personAnna, FirstName: "Anna", LastName: "Schmidt", Title: "Dr.",
			RoleGroup: domain.RoleGroupSeniorPhysician, Position: "Oberärztin", Department: "Geburtshilfe",
			WorkPhone: "1234", WorkEmail: "anna.schmidt@klinik.example",
			PrivatePhone: "0170 555", PrivateEmail: "anna@home.example",
			Active: true,
		},
		{
			ID: personBernd, FirstName: "Bernd", LastName: "Müller",
			RoleGroup: domain.RoleGroupAssistantPhysician, Position: "Assistenzarzt", Department: "Anästhesie",
			WorkPhone: "2345", WorkEmail: "bernd.mueller@klinik.example",
			PrivatePhone: "0171 666", PrivateEmail: "bernd@home.example",
			ShowPrivateContact: true,
			Active:             true,
		},
		{
			ID: personCarla, FirstName: "Carla", LastName: "Weber",
			RoleGroup: domain.RoleGroupAdministrative, Position: "Sekretariat",
			WorkPhone: "3456",
			Active:    false,
		},
	}
}

func testProcedures() []*domain.Procedure {
	return []*domain.Procedure{
		{
			ID: "proc-1", Title: "Geburtshilfe Leitlinie", Category: "Kreißsaal", Version: "2",
			Status: domain.ProcedureStatusPublished, Keywords: []string{"Geburt", "Kreißsaal"},
			Body: "Ablauf der vaginalen Entbindung.",
		},
		{
			ID: "proc-2", Title: "Notfallmanagement Kreißsaal", Category: "Kreißsaal",
			Status: domain.ProcedureStatusPublished, Body: "Bei Geburt mit Komplikationen sofort Oberarzt rufen.",
		},
		{
			ID: "proc-3", Title: "Geburt Entwurf", Status: domain.ProcedureStatusDraft,
			CreatedBy: personAnna,
		},
		{
			ID: "proc-4", Title: "Geburt Review", Status: domain.ProcedureStatusReview,
			Members: []string{personBernd},
		},
		{
			ID: "proc-5", Title: "Geburt Archiv", Status: domain.ProcedureStatusArchived,
			CreatedBy: personAnna,
		},
	}
}
