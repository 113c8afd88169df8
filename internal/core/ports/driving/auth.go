package driving

import (
	"context"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

// AuthService handles user authentication
type AuthService interface {
	// Authenticate validates credentials and creates a session
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a token and returns the caller's authorization context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// RefreshToken generates a new token from a valid refresh token
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates a session
	Logout(ctx context.Context, token string) error
}

// PreferenceService reads and updates per-account visibility preferences
type PreferenceService interface {
	// Get returns the caller's preferences
	Get(ctx context.Context, userID string) (*domain.Preferences, error)

	// Update replaces the caller's visible role groups. Unknown groups are rejected
	// with domain.ErrInvalidInput.
	Update(ctx context.Context, userID string, prefs domain.Preferences) (*domain.Preferences, error)
}
