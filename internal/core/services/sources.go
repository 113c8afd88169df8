package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

// Ensure the sources implement CandidateSource
var (
	_ driven.CandidateSource = (*procedureSource)(nil)
	_ driven.CandidateSource = (*videoSource)(nil)
	_ driven.CandidateSource = (*presentationSource)(nil)
	_ driven.CandidateSource = (*personSource)(nil)
)

// NewCandidateSources returns one source per entity type, in group order
func NewCandidateSources(
	procedures driven.ProcedureStore,
	media driven.MediaStore,
	people driven.PersonStore,
	resolver *VisibilityResolver,
) []driven.CandidateSource {
	return []driven.CandidateSource{
		NewProcedureSource(procedures, resolver),
		NewVideoSource(media, resolver),
		NewPresentationSource(media, resolver),
		NewPersonSource(people, resolver),
	}
}

// procedureSource feeds the procedures group
type procedureSource struct {
	store    driven.ProcedureStore
	resolver *VisibilityResolver
}

// NewProcedureSource creates the procedure candidate source
func NewProcedureSource(store driven.ProcedureStore, resolver *VisibilityResolver) driven.CandidateSource {
	return &procedureSource{store: store, resolver: resolver}
}

func (s *procedureSource) Type() domain.EntityType { return domain.EntityProcedures }

// FetchCandidates loads every non-archived procedure for managers. Other
// callers get published procedures unioned with the ones involving them.
func (s *procedureSource) FetchCandidates(ctx context.Context, caller domain.AuthorizationContext) ([]*domain.Candidate, error) {
	if !authenticated(caller) {
		return nil, nil
	}

	var procs []*domain.Procedure
	if caller.Can(domain.CapabilityManageProcedures) {
		all, err := s.store.List(ctx, domain.ProcedureFilter{ExcludeArchived: true})
		if err != nil {
			return nil, fmt.Errorf("list procedures: %w", err)
		}
		procs = all
	} else {
		var published, involved []*domain.Procedure
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			published, err = s.store.List(gctx, domain.ProcedureFilter{
				Statuses: []domain.ProcedureStatus{domain.ProcedureStatusPublished},
			})
			return err
		})
		if personID := caller.CallerID(); personID != "" {
			g.Go(func() error {
				var err error
				involved, err = s.store.List(gctx, domain.ProcedureFilter{
					ExcludeArchived: true,
					InvolvingPerson: personID,
				})
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("list procedures: %w", err)
		}
		procs = unionByID(published, involved)
	}

	candidates := make([]*domain.Candidate, 0, len(procs))
	for _, p := range procs {
		if !s.resolver.ResolveProcedure(p, caller).Visible {
			continue
		}
		candidates = append(candidates, procedureCandidate(p))
	}
	return candidates, nil
}

// unionByID merges procedure lists keeping the first occurrence of each id
func unionByID(lists ...[]*domain.Procedure) []*domain.Procedure {
	seen := make(map[string]struct{})
	var out []*domain.Procedure
	for _, list := range lists {
		for _, p := range list {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func procedureCandidate(p *domain.Procedure) *domain.Candidate {
	subtitle := p.Category
	if p.Version != "" {
		subtitle = joinNonEmpty(" · ", p.Category, "v"+p.Version)
	}
	return &domain.Candidate{
		Type:     domain.EntityProcedures,
		ID:       p.ID,
		Title:    p.Title,
		Keywords: p.Keywords,
		Body:     p.Body,
		Subtitle: subtitle,
		URL:      "/procedures/" + p.ID,
		Metadata: domain.HitMetadata{
			Category: p.Category,
			Version:  p.Version,
			Status:   p.Status,
		},
	}
}

// videoSource feeds the videos group
type videoSource struct {
	store    driven.MediaStore
	resolver *VisibilityResolver
}

// NewVideoSource creates the training video candidate source
func NewVideoSource(store driven.MediaStore, resolver *VisibilityResolver) driven.CandidateSource {
	return &videoSource{store: store, resolver: resolver}
}

func (s *videoSource) Type() domain.EntityType { return domain.EntityVideos }

func (s *videoSource) FetchCandidates(ctx context.Context, caller domain.AuthorizationContext) ([]*domain.Candidate, error) {
	// Without the entitlement the store is not queried at all
	if !s.resolver.CanAccessTraining(caller) {
		return nil, nil
	}

	videos, err := s.store.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	candidates := make([]*domain.Candidate, 0, len(videos))
	for _, v := range videos {
		if !s.resolver.ResolveVideo(v, caller).Visible {
			continue
		}
		candidates = append(candidates, &domain.Candidate{
			Type:     domain.EntityVideos,
			ID:       v.ID,
			Title:    v.Title,
			Keywords: v.Keywords,
			Body:     v.Description,
			Subtitle: v.Platform,
			URL:      "/training/videos/" + v.ID,
			Metadata: domain.HitMetadata{Platform: v.Platform},
		})
	}
	return candidates, nil
}

// presentationSource feeds the presentations group
type presentationSource struct {
	store    driven.MediaStore
	resolver *VisibilityResolver
}

// NewPresentationSource creates the training presentation candidate source
func NewPresentationSource(store driven.MediaStore, resolver *VisibilityResolver) driven.CandidateSource {
	return &presentationSource{store: store, resolver: resolver}
}

func (s *presentationSource) Type() domain.EntityType { return domain.EntityPresentations }

func (s *presentationSource) FetchCandidates(ctx context.Context, caller domain.AuthorizationContext) ([]*domain.Candidate, error) {
	if !s.resolver.CanAccessTraining(caller) {
		return nil, nil
	}

	presentations, err := s.store.ListPresentations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}

	candidates := make([]*domain.Candidate, 0, len(presentations))
	for _, p := range presentations {
		if !s.resolver.ResolvePresentation(p, caller).Visible {
			continue
		}
		candidates = append(candidates, &domain.Candidate{
			Type:     domain.EntityPresentations,
			ID:       p.ID,
			Title:    p.Title,
			Keywords: p.Keywords,
			Body:     p.Description,
			Subtitle: p.FileName,
			URL:      "/training/presentations/" + p.ID,
			Metadata: domain.HitMetadata{MimeType: p.MimeType},
		})
	}
	return candidates, nil
}

// personSource feeds the people group
type personSource struct {
	store    driven.PersonStore
	resolver *VisibilityResolver
}

// NewPersonSource creates the personnel candidate source
func NewPersonSource(store driven.PersonStore, resolver *VisibilityResolver) driven.CandidateSource {
	return &personSource{store: store, resolver: resolver}
}

func (s *personSource) Type() domain.EntityType { return domain.EntityPeople }

// FetchCandidates never puts private contact data into searchable text
func (s *personSource) FetchCandidates(ctx context.Context, caller domain.AuthorizationContext) ([]*domain.Candidate, error) {
	if !authenticated(caller) {
		return nil, nil
	}

	people, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}

	candidates := make([]*domain.Candidate, 0, len(people))
	for _, p := range people {
		if !s.resolver.ResolvePerson(p, caller).Visible {
			continue
		}
		var keywords []string
		for _, k := range []string{string(p.RoleGroup), p.Position, p.Department} {
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		candidates = append(candidates, &domain.Candidate{
			Type:     domain.EntityPeople,
			ID:       p.ID,
			Title:    p.DisplayName(),
			Keywords: keywords,
			Body:     joinNonEmpty(" ", p.WorkEmail, p.WorkPhone),
			Subtitle: joinNonEmpty(" · ", p.Position, p.Department),
			URL:      "/people/" + p.ID,
			Metadata: domain.HitMetadata{RoleGroup: p.RoleGroup, Position: p.Position},
			Person:   p,
		})
	}
	return candidates, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
