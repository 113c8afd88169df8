package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

func testClaims(role domain.Role, expiresIn time.Duration) *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "anna@ward.example",
		Role:      role,
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(expiresIn).Unix(),
	}
}

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if string(adapter.jwtSecret) != "test-secret" {
		t.Error("expected jwt secret to be set")
	}

	cheap := NewAdapterWithCost("test-secret", 4)
	if cheap.bcryptCost != 4 {
		t.Errorf("expected bcrypt cost 4, got %d", cheap.bcryptCost)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}

	if !adapter.VerifyPassword("correct horse", hash) {
		t.Error("expected correct password to verify")
	}
	if adapter.VerifyPassword("wrong horse", hash) {
		t.Error("expected wrong password to fail")
	}
	if adapter.VerifyPassword("correct horse", "not-a-hash") {
		t.Error("expected invalid hash to fail")
	}

	again, _ := adapter.HashPassword("correct horse")
	if again == hash {
		t.Error("expected different hashes for same password (due to salt)")
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	for _, role := range []domain.Role{domain.RoleMember, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			original := testClaims(role, 24*time.Hour)

			token, err := adapter.GenerateToken(original)
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}
			if strings.Count(token, ".") != 2 {
				t.Errorf("expected three JWT segments, got %q", token)
			}

			parsed, err := adapter.ParseToken(token)
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if *parsed != *original {
				t.Errorf("expected %+v, got %+v", *original, *parsed)
			}
		})
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")
	token, _ := adapter.GenerateToken(testClaims(domain.RoleMember, -2*time.Hour))

	_, err := adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _ := NewAdapter("secret-1").GenerateToken(testClaims(domain.RoleMember, time.Hour))

	_, err := NewAdapter("secret-2").ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_ForeignIssuer(t *testing.T) {
	secret := []byte("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewAdapter("test-secret").ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_NoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewAdapter("test-secret").ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_MalformedToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	for _, tc := range []string{"", "not-a-jwt", "only.two.parts.missing", "header.payload"} {
		if _, err := adapter.ParseToken(tc); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for %q, got %v", tc, err)
		}
	}
}

func BenchmarkParseToken(b *testing.B) {
	adapter := NewAdapter("test-secret")
	token, _ := adapter.GenerateToken(testClaims(domain.RoleMember, time.Hour))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.ParseToken(token)
	}
}
