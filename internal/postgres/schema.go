package postgres

import (
	"context"
	"fmt"
)

// InitSchema creates the tables and constraints the store relies on. It is
// idempotent and safe to run on every startup.
func (s *Store) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publishers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			surname TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			isbn TEXT UNIQUE,
			publication_year INT,
			publisher_id BIGINT REFERENCES publishers(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS book_authors (
			book_id TEXT NOT NULL REFERENCES books(id),
			author_id BIGINT NOT NULL REFERENCES authors(id),
			PRIMARY KEY (book_id, author_id)
		)`,
		`CREATE TABLE IF NOT EXISTS book_categories (
			book_id TEXT NOT NULL REFERENCES books(id),
			category_id BIGINT NOT NULL REFERENCES categories(id),
			PRIMARY KEY (book_id, category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			cpf TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS copies (
			id BIGSERIAL PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			barcode TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'available',
			location TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS loans (
			id BIGSERIAL PRIMARY KEY,
			copy_id BIGINT NOT NULL REFERENCES copies(id),
			client_id BIGINT NOT NULL REFERENCES clients(id),
			loaned_at TIMESTAMPTZ NOT NULL,
			due_date TIMESTAMPTZ NOT NULL,
			returned_at TIMESTAMPTZ,
			fine NUMERIC(10,2) NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// At most one open loan per copy, enforced by the database itself.
		`CREATE UNIQUE INDEX IF NOT EXISTS loans_one_open_per_copy
			ON loans (copy_id) WHERE active`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGSERIAL PRIMARY KEY,
			copy_id BIGINT NOT NULL REFERENCES copies(id),
			client_id BIGINT NOT NULL REFERENCES clients(id),
			reserved_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ,
			notified BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS seq_counters (
			seq_name TEXT NOT NULL,
			seq_year INT NOT NULL,
			seq_value BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (seq_name, seq_year)
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			entity TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("initializing schema: %w", err)
		}
	}
	return nil
}
