package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

func TestCreateUser(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, &models.User{
		Username:     "maria",
		PasswordHash: "hash",
		Role:         models.RoleLibrarian,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := store.GetUserByUsername(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, models.RoleLibrarian, got.Role)

	_, err = store.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, &models.User{
		Username: "maria", PasswordHash: "hash", Role: models.RoleLibrarian})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, &models.User{
		Username: "maria", PasswordHash: "other", Role: models.RoleAdministrator})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateUserUnknownRole(t *testing.T) {
	store := testStore(t)

	_, err := store.CreateUser(context.Background(), &models.User{
		Username: "maria", PasswordHash: "hash", Role: models.Role("visitor")})
	assert.Error(t, err)
}

func TestCreateClientDuplicateCPF(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.CreateClient(ctx, &models.Client{Name: "João Silva", CPF: "12345678901"})
	require.NoError(t, err)

	_, err = store.CreateClient(ctx, &models.Client{Name: "Outra Pessoa", CPF: "12345678901"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
