package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, postgres.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	return user, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(user *models.User) (string, error) {
	return "token-for-" + user.Username, nil
}

func login(t *testing.T, store UserStore, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewAuthHandler(store, fakeTokenIssuer{})
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	store := &fakeUserStore{user: &models.User{
		Username:     "maria",
		PasswordHash: hash,
		Role:         models.RoleLibrarian,
	}}

	rec := login(t, store, `{"username": "maria", "password": "s3cret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-for-maria")
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestLoginRejections(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	store := &fakeUserStore{user: &models.User{Username: "maria", PasswordHash: hash}}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"wrong password", `{"username": "maria", "password": "wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username": "ghost", "password": "s3cret"}`, http.StatusUnauthorized},
		{"missing fields", `{}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(t, store, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			// Credential failures share one message so callers cannot
			// probe which usernames exist.
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "incorrect username or password")
			}
		})
	}
}
