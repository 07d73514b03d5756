package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/web"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the session placed there by Middleware.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*domain.Session)
	return session, ok
}

// Middleware rejects requests without a valid bearer token and stores
// the resolved session in the request context.
func Middleware(service Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				web.RespondJSON(w, logger, http.StatusUnauthorized, map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "missing bearer token",
				})
				return
			}

			session, err := service.SessionFromToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				web.RespondJSON(w, logger, http.StatusUnauthorized, map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "invalid or expired session",
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
