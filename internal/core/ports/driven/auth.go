package driven

import "github.com/custodia-labs/wardhub-core/internal/core/domain"

// AuthAdapter handles password hashing and token signing.
// Session persistence lives in SessionStore.
type AuthAdapter interface {
	// HashPassword returns a storable hash of a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plaintext password with a stored hash
	VerifyPassword(password, hash string) bool

	// GenerateToken signs the claims into a bearer token
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a bearer token and returns its claims
	ParseToken(token string) (*domain.TokenClaims, error)
}
