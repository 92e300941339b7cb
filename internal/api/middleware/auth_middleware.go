package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/aaravmahajanofficial/afos-pos/internal/utils/response"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var SessionContextKey = contextKey(uuid.New())

// SessionResolver turns a bearer token into the live session it was issued for.
// Failures are returned as *errors.AppError.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {

	return &AuthMiddleware{sessions: sessions}

}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		s, err := m.sessions.Resolve(r.Context(), tokenParts[1])
		if err != nil {
			logger.Warn("Session resolution failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, s)

		requestScopedLogger := logger.With(slog.String("sessionId", s.ID))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		requestScopedLogger.Debug("Session authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(*session.Session)

	return s, ok && s != nil
}
