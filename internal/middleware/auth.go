package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aarthiksaathi/aarthik-be/internal/auth"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (auth.Claims, error)
}

type contextKeyUserID struct{}

// UserID returns the authenticated user id stored by RequireAuth or OptionalAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKeyUserID{}).(int64)
	return id, ok
}

// WithUserID stores an authenticated user id in ctx.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, contextKeyUserID{}, id)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", chimw.GetReqID(r.Context()),
				)
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// OptionalAuth attaches the user id when a valid token is present and lets
// anonymous requests through. An invalid token is rejected rather than ignored.
func OptionalAuth(tokens TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	required := RequireAuth(tokens, logger)
	return func(next http.Handler) http.Handler {
		authed := required(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := bearer(r); !ok {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}
