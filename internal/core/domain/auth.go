package domain

import (
	"slices"
	"time"
)

// Session represents an authenticated user session
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AuthorizationContext answers capability and role questions about the caller.
// Source adapters and the preview engine depend on it instead of session state.
type AuthorizationContext interface {
	// CallerID is the personnel id of the caller ("" if the account has none)
	CallerID() string

	// IsAuthenticated is false for anonymous or nil callers
	IsAuthenticated() bool

	// IsAdmin reports the administrative role
	IsAdmin() bool

	// Can reports a capability grant; admins hold every capability
	Can(c Capability) bool

	// VisibleRoleGroups returns the absence visibility preference; nil means all groups
	VisibleRoleGroups() []RoleGroup
}

var _ AuthorizationContext = (*AuthContext)(nil)

// AuthContext contains authenticated user info for request context
type AuthContext struct {
	UserID       string       `json:"user_id"`
	PersonID     string       `json:"person_id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Role         Role         `json:"role"`
	Capabilities []Capability `json:"capabilities"`
	RoleGroups   []RoleGroup  `json:"visible_role_groups"`
	SessionID    string       `json:"session_id"`
}

// NewAuthContext builds the request auth context from an account and its session
func NewAuthContext(user *User, sessionID string) *AuthContext {
	return &AuthContext{
		UserID:       user.ID,
		PersonID:     user.PersonID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		Capabilities: user.Capabilities,
		RoleGroups:   user.VisibleRoleGroups,
		SessionID:    sessionID,
	}
}

// CallerID returns the personnel id linked to the account
func (a *AuthContext) CallerID() string {
	if a == nil {
		return ""
	}
	return a.PersonID
}

// IsAuthenticated reports whether the context belongs to a known account
func (a *AuthContext) IsAuthenticated() bool {
	return a != nil && a.UserID != ""
}

// IsAdmin checks if the authenticated user is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == RoleAdmin
}

// Can checks a capability. Admins hold all capabilities.
func (a *AuthContext) Can(c Capability) bool {
	if !a.IsAuthenticated() {
		return false
	}
	if a.Role == RoleAdmin {
		return true
	}
	return slices.Contains(a.Capabilities, c)
}

// VisibleRoleGroups returns nil when the preference is unset
func (a *AuthContext) VisibleRoleGroups() []RoleGroup {
	if a == nil || len(a.RoleGroups) == 0 {
		return nil
	}
	return a.RoleGroups
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         *UserSummary `json:"user"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
