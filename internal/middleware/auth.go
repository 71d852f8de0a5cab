package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Authenticator resolves a raw bearer token to its owning user and the
// token's own id. Implemented by service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (userID int64, tokenID string, err error)
}

type contextKey string

const (
	userIDKey  contextKey = "userID"
	tokenIDKey contextKey = "tokenID"
)

// BearerAuth returns middleware that validates the Authorization header and
// injects the authenticated user id and token id into the request context.
// Any failure, including a revoked token, yields the same 401 JSON envelope.
func BearerAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorized(w)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeUnauthorized(w)
				return
			}

			userID, tokenID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tokenIDKey, tokenID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// TokenIDFromContext extracts the presented token's id from the request context.
func TokenIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tokenIDKey).(string)
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "No autenticado.",
	})
}
