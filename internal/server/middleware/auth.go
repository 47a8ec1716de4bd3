// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jonathan/job-board/internal/policy"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// actorKey is the context key for storing the authenticated actor.
const actorKey ContextKey = "actor"

// TokenValidator validates a JWT token and returns the actor it identifies.
type TokenValidator interface {
	ValidateToken(tokenString string) (policy.Actor, error)
}

// RequireAuth creates middleware that rejects requests without a valid
// bearer token and stores the authenticated actor in the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := actorFromHeader(r, validator)
			if !ok {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth creates middleware that stores the actor when a valid bearer
// token is present and lets the request through anonymously otherwise.
// Used on routes that are public but show more to authenticated callers.
func OptionalAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor, ok := actorFromHeader(r, validator); ok {
				r = r.WithContext(context.WithValue(r.Context(), actorKey, actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// actorFromHeader extracts and validates the bearer token.
// The "Bearer" prefix is matched case-insensitively.
func actorFromHeader(r *http.Request, validator TokenValidator) (policy.Actor, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return policy.Actor{}, false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return policy.Actor{}, false
	}

	actor, err := validator.ValidateToken(parts[1])
	if err != nil {
		return policy.Actor{}, false
	}
	return actor, true
}

// ActorFrom extracts the authenticated actor from the request context.
func ActorFrom(r *http.Request) (policy.Actor, bool) {
	actor, ok := r.Context().Value(actorKey).(policy.Actor)
	return actor, ok
}

// WithActor returns a context carrying the given actor (for testing handlers
// without running the middleware).
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":false,"error":{"kind":"UNAUTHORIZED","message":"authentication required"}}`))
}
