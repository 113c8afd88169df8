package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/logger"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// MeResponse is the caller's account as seen by the authorization layer
// @Description Current account
type MeResponse struct {
	UserID            string              `json:"user_id"`
	PersonID          string              `json:"person_id"`
	Email             string              `json:"email"`
	Name              string              `json:"name"`
	Role              domain.Role         `json:"role"`
	Capabilities      []domain.Capability `json:"capabilities"`
	VisibleRoleGroups []domain.RoleGroup  `json:"visible_role_groups"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Pings PostgreSQL and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Dependency unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := []struct {
		name   string
		pinger Pinger
	}{
		{"database", s.db},
		{"redis", s.redisClient},
	}
	for _, c := range checks {
		if c.pinger == nil {
			continue
		}
		if err := c.pinger.Ping(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed", zap.String("dependency", c.name), zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, c.name+" unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body or missing credentials"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			logger.FromContext(r.Context()).Error("authentication failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), extractBearerToken(r)); err != nil {
		logger.FromContext(r.Context()).Warn("logout failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Account endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated account with its capabilities
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if !authCtx.IsAuthenticated() {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	capabilities := authCtx.Capabilities
	if capabilities == nil {
		capabilities = []domain.Capability{}
	}
	groups := authCtx.RoleGroups
	if groups == nil {
		groups = []domain.RoleGroup{}
	}

	writeJSON(w, http.StatusOK, MeResponse{
		UserID:            authCtx.UserID,
		PersonID:          authCtx.PersonID,
		Email:             authCtx.Email,
		Name:              authCtx.Name,
		Role:              authCtx.Role,
		Capabilities:      capabilities,
		VisibleRoleGroups: groups,
	})
}

// handleGetPreferences godoc
// @Summary      Get preferences
// @Description  Get the role groups whose absences the caller wants to see (empty means all)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Preferences
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me/preferences [get]
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if !authCtx.IsAuthenticated() {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prefs, err := s.preferenceService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// handleUpdatePreferences godoc
// @Summary      Update preferences
// @Description  Replace the caller's visible role groups
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.Preferences  true  "Visible role groups"
// @Success      200      {object}  domain.Preferences
// @Failure      400      {object}  ErrorResponse  "Unknown role group"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /me/preferences [put]
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if !authCtx.IsAuthenticated() {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := s.preferenceService.Update(r.Context(), authCtx.UserID, req)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// Search endpoints

// handleGlobalSearch godoc
// @Summary      Global search
// @Description  Search procedures, training media and personnel at once. Results are grouped per entity type and filtered by what the caller may see.
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Search text"
// @Param        limit  query     int     false  "Hits per group (1-20)"  default(6)
// @Success      200    {object}  domain.GlobalSearchResult
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      503    {object}  ErrorResponse  "A record source is unavailable"
// @Failure      504    {object}  ErrorResponse  "Search timed out"
// @Router       /search/global [get]
func (s *Server) handleGlobalSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q.Get("limit"), domain.DefaultSearchLimit)

	result, err := s.searchService.Search(r.Context(), GetAuthContext(r.Context()), q.Get("q"), limit)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePreview godoc
// @Summary      Person schedule preview
// @Description  Upcoming duties, workplaces and, where permitted, absences of one person
// @Tags         People
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path      string  true   "Person ID (UUID)"
// @Param        days        query     int     false  "Number of days (1-21)"  default(14)
// @Success      200         {object}  domain.SchedulePreview
// @Failure      401         {object}  ErrorResponse  "Unauthorized"
// @Failure      503         {object}  ErrorResponse  "Roster unavailable"
// @Failure      504         {object}  ErrorResponse  "Preview timed out"
// @Router       /people/{employeeId}/preview [get]
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	days := intParam(r.URL.Query().Get("days"), domain.DefaultPreviewDays)

	preview, err := s.previewService.Preview(r.Context(), GetAuthContext(r.Context()), r.PathValue("employeeId"), days)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// Helper functions

// intParam parses a query integer; missing or malformed values yield def
func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// writeServiceError maps a service error onto an HTTP status
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, context.Canceled):
		logger.FromContext(ctx).Warn("source unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "source unavailable")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		logger.FromContext(ctx).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
