package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

const clientColumns = `id, name, cpf, email, phone, created_at`

// CreateClient registers a library member. The CPF is unique.
func (s *Store) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clients (name, cpf, email, phone)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		client.Name, client.CPF, client.Email, client.Phone).Scan(&id)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: cpf already registered", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting client: %w", err)
	}
	return s.GetClient(ctx, id)
}

// GetClient fetches one client.
func (s *Store) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var c models.Client
	err := s.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching client %d: %w", id, err)
	}
	return &c, nil
}

// ListClients lists every client, newest first.
func (s *Store) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CPF, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}
