package postgres

import (
	"context"
	"fmt"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// CreateAuthor inserts an author.
func (s *Store) CreateAuthor(ctx context.Context, author *models.Author) (*models.Author, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO authors (name, surname) VALUES ($1, $2)
		 RETURNING id, created_at`,
		author.Name, author.Surname).Scan(&author.ID, &author.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting author: %w", err)
	}
	return author, nil
}

// ListAuthors lists every author.
func (s *Store) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, surname, created_at FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Surname, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}
	return authors, nil
}

// CreateCategory inserts a category; the name is unique.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1)
		 RETURNING id, created_at`,
		category.Name).Scan(&category.ID, &category.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: category already registered", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return category, nil
}

// ListCategories lists every category.
func (s *Store) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

// CreatePublisher inserts a publisher.
func (s *Store) CreatePublisher(ctx context.Context, publisher *models.Publisher) (*models.Publisher, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO publishers (name) VALUES ($1)
		 RETURNING id, created_at`,
		publisher.Name).Scan(&publisher.ID, &publisher.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting publisher: %w", err)
	}
	return publisher, nil
}

// ListPublishers lists every publisher.
func (s *Store) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM publishers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing publishers: %w", err)
	}
	defer rows.Close()

	var publishers []*models.Publisher
	for rows.Next() {
		var p models.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning publisher: %w", err)
		}
		publishers = append(publishers, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publishers: %w", err)
	}
	return publishers, nil
}
