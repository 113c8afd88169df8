package http

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driving"
	"github.com/custodia-labs/wardhub-core/internal/logger"
)

type contextKey string

const authContextKey contextKey = "auth_context"

const requestIDHeader = "X-Request-ID"

// AuthMiddleware turns a bearer token into a *domain.AuthContext on the
// request context. Search and preview handlers rely on it being present.
type AuthMiddleware struct {
	auth driving.AuthService
}

func NewAuthMiddleware(auth driving.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// tokenRejections maps validation failures to client messages; anything
// else is reported as an invalid token.
var tokenRejections = []struct {
	err     error
	message string
}{
	{domain.ErrTokenExpired, "token expired"},
	{domain.ErrSessionNotFound, "session not found"},
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		authCtx, err := m.auth.ValidateToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, rejectionMessage(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authContextKey, authCtx)))
	})
}

func rejectionMessage(err error) string {
	for _, rej := range tokenRejections {
		if errors.Is(err, rej.err) {
			return rej.message
		}
	}
	return "invalid token"
}

// GetAuthContext returns nil outside authenticated routes.
func GetAuthContext(ctx context.Context) *domain.AuthContext {
	if ctx == nil {
		return nil
	}
	authCtx, _ := ctx.Value(authContextKey).(*domain.AuthContext)
	return authCtx
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// LoggingMiddleware gives each request its own logger tagged with a
// request id, then writes one summary line when the handler returns.
// An incoming X-Request-ID is reused; otherwise a new one is generated.
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(l *zap.Logger) *LoggingMiddleware {
	if l == nil {
		l = zap.NewNop()
	}
	return &LoggingMiddleware{logger: l}
}

func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx, reqLogger := logger.WithRequestID(r.Context(), m.logger, requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		reqLogger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// statusRecorder remembers the status code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RecoveryMiddleware converts a handler panic into a 500 and logs the stack.
type RecoveryMiddleware struct {
	logger *zap.Logger
}

func NewRecoveryMiddleware(l *zap.Logger) *RecoveryMiddleware {
	if l == nil {
		l = zap.NewNop()
	}
	return &RecoveryMiddleware{logger: l}
}

func (m *RecoveryMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			m.logger.Error("panic recovered",
				zap.Any("panic", rv),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.ByteString("stack", debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
