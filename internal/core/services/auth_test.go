package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockUserStore, *mocks.MockSessionStore, *mocks.MockAuthAdapter, *authService) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(userStore, sessionStore, authAdapter, time.Hour).(*authService)
	return userStore, sessionStore, authAdapter, svc
}

func seedUser(t *testing.T, store *mocks.MockUserStore, user *domain.User) {
	t.Helper()
	if err := store.Save(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, 0).(*authService)
	if svc.tokenTTL != DefaultTokenTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTokenTTL, svc.tokenTTL)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	userStore, sessionStore, _, svc := newTestAuthService()

	// Mock hasher uses plain text comparison
	seedUser(t, userStore, &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "password123",
		Name:         "Test User",
		Role:         domain.RoleMember,
		PersonID:     "7b0c3f8e-1d2a-4c5b-9e6f-0a1b2c3d4e5f",
		Active:       true,
		CreatedAt:    time.Now(),
	})

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name:    "valid credentials",
			req:     domain.LoginRequest{Email: "test@example.com", Password: "password123"},
			wantErr: nil,
		},
		{
			name:    "empty email",
			req:     domain.LoginRequest{Email: "", Password: "password123"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty password",
			req:     domain.LoginRequest{Email: "test@example.com", Password: ""},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			req:     domain.LoginRequest{Email: "unknown@example.com", Password: "password123"},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Authenticate(context.Background(), tt.req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Token == "" {
				t.Error("expected token to be generated")
			}
			if resp.RefreshToken == "" {
				t.Error("expected refresh token to be generated")
			}
			if resp.User.PersonID != "7b0c3f8e-1d2a-4c5b-9e6f-0a1b2c3d4e5f" {
				t.Errorf("expected person id in summary, got %q", resp.User.PersonID)
			}
		})
	}

	if sessionStore.Count() != 1 {
		t.Errorf("expected 1 session, got %d", sessionStore.Count())
	}
	user, _ := userStore.Get(context.Background(), "user-123")
	if user.LastLoginAt == nil {
		t.Error("expected last login to be recorded")
	}
}

func TestAuthService_Authenticate_InactiveUser(t *testing.T) {
	userStore, _, _, svc := newTestAuthService()

	seedUser(t, userStore, &domain.User{
		ID:           "user-123",
		Email:        "inactive@example.com",
		PasswordHash: "password123",
		Role:         domain.RoleMember,
		Active:       false,
	})

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "inactive@example.com",
		Password: "password123",
	})
	if err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for inactive user, got %v", err)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	userStore, sessionStore, authAdapter, svc := newTestAuthService()
	ctx := context.Background()

	seedUser(t, userStore, &domain.User{
		ID:                "user-123",
		Email:             "test@example.com",
		PasswordHash:      "password123",
		Role:              domain.RoleMember,
		PersonID:          "person-1",
		Capabilities:      []domain.Capability{domain.CapabilityTrainingAccess},
		VisibleRoleGroups: []domain.RoleGroup{domain.RoleGroupNursing},
		Active:            true,
	})
	seedUser(t, userStore, &domain.User{ID: "user-off", Email: "off@example.com", Active: false})

	tokenFor := func(userID, sessionID string, expires time.Time) string {
		token, _ := authAdapter.GenerateToken(&domain.TokenClaims{
			UserID:    userID,
			SessionID: sessionID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expires.Unix(),
		})
		return token
	}
	saveSession := func(id, userID string, expires time.Time) {
		_ = sessionStore.Save(ctx, &domain.Session{ID: id, UserID: userID, ExpiresAt: expires})
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{name: "empty token", token: func() string { return "" }, wantErr: domain.ErrTokenInvalid},
		{name: "invalid token format", token: func() string { return "invalid-token" }, wantErr: domain.ErrTokenInvalid},
		{name: "malformed base64 token", token: func() string { return "not!valid@base64#" }, wantErr: domain.ErrTokenInvalid},
		{
			name:    "expired token",
			token:   func() string { return tokenFor("user-123", "s-expired", time.Now().Add(-time.Hour)) },
			wantErr: domain.ErrTokenExpired,
		},
		{
			name:    "session not found",
			token:   func() string { return tokenFor("user-123", "missing", time.Now().Add(time.Hour)) },
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "session expired",
			token: func() string {
				saveSession("s-old", "user-123", time.Now().Add(-time.Minute))
				return tokenFor("user-123", "s-old", time.Now().Add(time.Hour))
			},
			wantErr: domain.ErrTokenExpired,
		},
		{
			name: "deactivated account",
			token: func() string {
				saveSession("s-off", "user-off", time.Now().Add(time.Hour))
				return tokenFor("user-off", "s-off", time.Now().Add(time.Hour))
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name: "unknown account",
			token: func() string {
				saveSession("s-ghost", "ghost", time.Now().Add(time.Hour))
				return tokenFor("ghost", "s-ghost", time.Now().Add(time.Hour))
			},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token())
			if err != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("valid token loads current account", func(t *testing.T) {
		saveSession("s-ok", "user-123", time.Now().Add(time.Hour))

		authCtx, err := svc.ValidateToken(ctx, tokenFor("user-123", "s-ok", time.Now().Add(time.Hour)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if authCtx.CallerID() != "person-1" {
			t.Errorf("expected caller id person-1, got %q", authCtx.CallerID())
		}
		if !authCtx.Can(domain.CapabilityTrainingAccess) {
			t.Error("expected training capability from the stored account")
		}
		if got := authCtx.VisibleRoleGroups(); len(got) != 1 || got[0] != domain.RoleGroupNursing {
			t.Errorf("expected nursing preference, got %v", got)
		}
		if authCtx.SessionID != "s-ok" {
			t.Errorf("expected session id s-ok, got %q", authCtx.SessionID)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	userStore, sessionStore, _, svc := newTestAuthService()
	ctx := context.Background()

	// Logout with empty token should not error
	if err := svc.Logout(ctx, ""); err != nil {
		t.Errorf("expected no error for empty token, got %v", err)
	}

	// Logout with invalid token should not error (already invalid)
	if err := svc.Logout(ctx, "invalid-token"); err != nil {
		t.Errorf("expected no error for invalid token, got %v", err)
	}

	seedUser(t, userStore, &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "password123",
		Active:       true,
	})
	resp, err := svc.Authenticate(ctx, domain.LoginRequest{Email: "test@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionStore.Count() != 0 {
		t.Errorf("expected session to be deleted, %d left", sessionStore.Count())
	}
	if _, err := svc.ValidateToken(ctx, resp.Token); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	userStore, sessionStore, _, svc := newTestAuthService()
	ctx := context.Background()

	// Empty refresh token
	_, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: ""})
	if err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for empty refresh token, got %v", err)
	}

	// Non-existent refresh token
	_, err = svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: "non-existent-refresh-token"})
	if err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for non-existent refresh token, got %v", err)
	}

	seedUser(t, userStore, &domain.User{
		ID:           "user-refresh",
		Email:        "refresh@example.com",
		PasswordHash: "password123",
		Name:         "Refresh User",
		Role:         domain.RoleMember,
		Active:       true,
	})
	_ = sessionStore.Save(ctx, &domain.Session{
		ID:           "session-refresh",
		UserID:       "user-refresh",
		Token:        "token-refresh",
		RefreshToken: "valid-refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	_ = sessionStore.Save(ctx, &domain.Session{
		ID:           "session-stale",
		UserID:       "user-refresh",
		RefreshToken: "stale-refresh-token",
		ExpiresAt:    time.Now().Add(-time.Hour),
	})

	_, err = svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: "stale-refresh-token"})
	if err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for stale session, got %v", err)
	}

	resp, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: "valid-refresh-token"})
	if err != nil {
		t.Fatalf("expected no error for valid refresh token, got %v", err)
	}
	if resp.Token == "" {
		t.Error("expected new token to be generated")
	}
	if resp.RefreshToken == "" || resp.RefreshToken == "valid-refresh-token" {
		t.Error("expected new refresh token to be generated")
	}
	if _, err := sessionStore.Get(ctx, "session-refresh"); err != domain.ErrSessionNotFound {
		t.Error("expected old session to be rotated out")
	}
	if _, err := svc.ValidateToken(ctx, resp.Token); err != nil {
		t.Errorf("expected refreshed token to validate, got %v", err)
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	token1 := generateRefreshToken()
	token2 := generateRefreshToken()

	if token1 == "" {
		t.Error("expected non-empty refresh token")
	}
	if token1 == token2 {
		t.Error("expected unique refresh tokens")
	}
	if len(token1) < 30 {
		t.Error("expected longer refresh token")
	}
}

func TestAuthService_RefreshToken_RevokeFailure(t *testing.T) {
	userStore, sessionStore, _, svc := newTestAuthService()
	ctx := context.Background()

	seedUser(t, userStore, &domain.User{ID: "user-rot", Email: "rot@example.com", Active: true})
	_ = sessionStore.Save(ctx, &domain.Session{
		ID:           "session-rot",
		UserID:       "user-rot",
		RefreshToken: "rot-refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	storeDown := errors.New("session store unavailable")
	sessionStore.DeleteErr = storeDown

	resp, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: "rot-refresh-token"})
	if !errors.Is(err, storeDown) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if resp != nil {
		t.Error("expected no tokens when the old session could not be revoked")
	}
	if sessionStore.Count() != 1 {
		t.Errorf("expected no new session to be issued, %d stored", sessionStore.Count())
	}
}
