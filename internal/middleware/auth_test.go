package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

type fakeUserLoader struct {
	user *models.User
}

func (f *fakeUserLoader) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, postgres.ErrUserNotFound
	}
	return f.user, nil
}

func protectedRouter(verifier TokenVerifier, users UserLoader, perm models.Permission) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte("hello " + user.Username))
	})
	handler = RequirePermission(perm)(handler)
	return RequireAuth(verifier, users)(handler)
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{Username: "maria", Role: models.RoleLibrarian}
	router := protectedRouter(issuer, &fakeUserLoader{user: user}, models.PermManageLoans)

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello maria", rec.Body.String())
}

func TestRequireAuthRejections(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{Username: "maria", Role: models.RoleLibrarian}

	validToken, err := issuer.Issue(user)
	require.NoError(t, err)

	forged, err := auth.NewTokenIssuer("another-secret", time.Hour).Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		loader *fakeUserLoader
	}{
		{"missing header", "", &fakeUserLoader{user: user}},
		{"not a bearer token", "Basic abc123", &fakeUserLoader{user: user}},
		{"forged token", "Bearer " + forged, &fakeUserLoader{user: user}},
		{"deleted account", "Bearer " + validToken, &fakeUserLoader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(issuer, tt.loader, models.PermManageLoans)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	librarian := &models.User{Username: "maria", Role: models.RoleLibrarian}
	router := protectedRouter(issuer, &fakeUserLoader{user: librarian}, models.PermManageUsers)

	token, err := issuer.Issue(librarian)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The gate denies before the handler runs.
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hello")
}
