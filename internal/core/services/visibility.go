package services

import "github.com/custodia-labs/wardhub-core/internal/core/domain"

// VisibilityResolver decides per record and caller whether the record is a
// candidate and which optional fields may be exposed. It holds no state.
type VisibilityResolver struct{}

// NewVisibilityResolver creates a VisibilityResolver
func NewVisibilityResolver() *VisibilityResolver {
	return &VisibilityResolver{}
}

// ResolveProcedure: archived procedures are hidden from everyone. Managers see
// the rest; others see published ones and the ones they created or are assigned to.
func (v *VisibilityResolver) ResolveProcedure(p *domain.Procedure, caller domain.AuthorizationContext) domain.VisibilityDecision {
	if !authenticated(caller) || p == nil || p.IsArchived() {
		return domain.VisibilityDecision{}
	}
	visible := caller.Can(domain.CapabilityManageProcedures) ||
		p.IsPublished() ||
		p.InvolvesPerson(caller.CallerID())
	return domain.VisibilityDecision{Visible: visible}
}

// ResolveVideo requires the training entitlement
func (v *VisibilityResolver) ResolveVideo(video *domain.TrainingVideo, caller domain.AuthorizationContext) domain.VisibilityDecision {
	return domain.VisibilityDecision{Visible: video != nil && v.CanAccessTraining(caller)}
}

// ResolvePresentation requires the training entitlement
func (v *VisibilityResolver) ResolvePresentation(p *domain.TrainingPresentation, caller domain.AuthorizationContext) domain.VisibilityDecision {
	return domain.VisibilityDecision{Visible: p != nil && v.CanAccessTraining(caller)}
}

// ResolvePerson makes every active person a candidate. Private contact data is
// granted on the caller's own record, to admins, or when the person opted in.
func (v *VisibilityResolver) ResolvePerson(p *domain.Person, caller domain.AuthorizationContext) domain.VisibilityDecision {
	if !authenticated(caller) || p == nil || !p.Active {
		return domain.VisibilityDecision{}
	}
	self := caller.CallerID() != "" && caller.CallerID() == p.ID
	return domain.VisibilityDecision{
		Visible:        true,
		PrivateContact: self || caller.IsAdmin() || p.ShowPrivateContact,
	}
}

// CanAccessTraining reports the training entitlement (explicit flag or admin)
func (v *VisibilityResolver) CanAccessTraining(caller domain.AuthorizationContext) bool {
	return authenticated(caller) && caller.Can(domain.CapabilityTrainingAccess)
}

// authenticated guards against nil interfaces and typed nil contexts alike
func authenticated(caller domain.AuthorizationContext) bool {
	return caller != nil && caller.IsAuthenticated()
}
