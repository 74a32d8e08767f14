package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

const userColumns = `id, username, password_hash, email, role, created_at`

// CreateUser registers a staff account. The username is unique and the
// password must already be hashed by the caller.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if !user.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, email, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		user.Username, user.PasswordHash, user.Email, user.Role).Scan(&id)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: username already registered", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return s.getUser(ctx, `id = $1`, id)
}

// GetUserByUsername fetches one staff account by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `username = $1`, username)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &u, nil
}
