package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.AuthAdapter = (*MockAuthAdapter)(nil)

const (
	mockHashPrefix  = "plain:"
	mockTokenPrefix = "mock."
)

// MockAuthAdapter stands in for the JWT/bcrypt adapter. Hashes are the
// password behind a "plain:" marker and tokens are "mock." followed by
// the claims as base64 JSON, so tests can read both. Not for production.
type MockAuthAdapter struct{}

func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return mockHashPrefix + password, nil
}

// VerifyPassword also accepts unmarked hashes so fixtures can store the
// password as-is.
func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return strings.TrimPrefix(hash, mockHashPrefix) == password
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}
	return mockTokenPrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	payload, ok := strings.CutPrefix(token, mockTokenPrefix)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil || claims.SessionID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &claims, nil
}
