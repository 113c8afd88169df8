package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driving"
)

var _ driving.AuthService = (*authService)(nil)

// DefaultTokenTTL is used when NewAuthService gets a non-positive TTL
const DefaultTokenTTL = 24 * time.Hour

// authService issues and checks ward staff sessions. Every access token is
// backed by a stored session so logout and rotation take effect immediately.
type authService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	tokens   driven.AuthAdapter
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService wires the account, session and token ports together.
func NewAuthService(
	users driven.UserStore,
	sessions driven.SessionStore,
	tokens driven.AuthAdapter,
	tokenTTL time.Duration,
) driving.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &authService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Unknown accounts and bad passwords look the same to the caller.
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if !s.tokens.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.users.UpdateLastLogin(ctx, user.ID)
	return resp, nil
}

// ValidateToken resolves a bearer token into the caller's authorization
// context. Capabilities and visibility preferences come from the stored
// account, not the token, so admin edits apply on the next request.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if s.now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	if s.now().After(session.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	return domain.NewAuthContext(user, session.ID), nil
}

// RefreshToken rotates a live session: the old session is dropped and a new
// one with fresh tokens takes its place. No new session is issued unless the
// old one was deleted.
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}
	old, err := s.sessions.GetByRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if s.now().After(old.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.users.Get(ctx, old.UserID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, old.ID); err != nil {
		return nil, fmt.Errorf("revoke session %s: %w", old.ID, err)
	}
	return s.issueSession(ctx, user)
}

// Logout is idempotent; tokens that no longer parse have nothing to revoke.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// issueSession signs an access token for user and persists the session
// that backs it.
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	issued := s.now()
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: generateRefreshToken(),
		ExpiresAt:    issued.Add(s.tokenTTL),
		CreatedAt:    issued,
	}

	token, err := s.tokens.GenerateToken(&domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: session.ID,
		IssuedAt:  issued.Unix(),
		ExpiresAt: session.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}
	session.Token = token

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		Token:        token,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         user.ToSummary(),
	}, nil
}

// generateRefreshToken returns 32 random bytes, URL-safe encoded.
func generateRefreshToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
