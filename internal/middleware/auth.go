package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// Context keys for the authenticated caller.
type contextKey string

const (
	UserKey contextKey = "user"
	RoleKey contextKey = "role"
)

// UserLoader resolves a verified token subject to a stored user.
type UserLoader interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth verifies the Authorization bearer token, loads the caller's
// account and puts it into the request context. Requests without a valid
// token never reach the wrapped handler.
func RequireAuth(verifier TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			// The token is valid but the account must still exist.
			user, err := users.GetUserByUsername(r.Context(), claims.Username)
			if err != nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, RoleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission gates a route on the static role -> capability table.
// The check runs strictly before any handler logic or store transaction.
func RequirePermission(perm models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(RoleKey).(models.Role)
			if !ok {
				http.Error(w, "missing caller role", http.StatusUnauthorized)
				return
			}

			if err := models.Authorize(role, perm); err != nil {
				http.Error(w, "permission denied", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the authenticated user set by RequireAuth.
func GetUserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(UserKey).(*models.User)
	if !ok {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return user, nil
}
