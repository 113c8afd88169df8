package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driving"
)

// Ensure preferenceService implements PreferenceService
var _ driving.PreferenceService = (*preferenceService)(nil)

// preferenceService implements the PreferenceService interface
type preferenceService struct {
	userStore driven.UserStore
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(userStore driven.UserStore) driving.PreferenceService {
	return &preferenceService{userStore: userStore}
}

// Get returns the stored visible role groups (empty means all groups)
func (s *preferenceService) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	user, err := s.userStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Preferences{VisibleRoleGroups: normaliseGroups(user.VisibleRoleGroups)}, nil
}

// Update validates and replaces the visible role groups. Duplicates are dropped.
func (s *preferenceService) Update(ctx context.Context, userID string, prefs domain.Preferences) (*domain.Preferences, error) {
	for _, g := range prefs.VisibleRoleGroups {
		if !g.IsValid() {
			return nil, fmt.Errorf("role group %q: %w", g, domain.ErrInvalidInput)
		}
	}

	updated := domain.Preferences{VisibleRoleGroups: normaliseGroups(prefs.VisibleRoleGroups)}
	if err := s.userStore.UpdatePreferences(ctx, userID, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// normaliseGroups returns a non-nil, duplicate-free copy
func normaliseGroups(groups []domain.RoleGroup) []domain.RoleGroup {
	out := make([]domain.RoleGroup, 0, len(groups))
	seen := make(map[domain.RoleGroup]struct{}, len(groups))
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
