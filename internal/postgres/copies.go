package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

const copyColumns = `id, book_id, barcode, status, location, created_at`

// CreateCopy registers a new physical copy of a book. New copies always
// start available; status is owned by the loan and reservation operations.
// A copy without a barcode gets a generated one.
func (s *Store) CreateCopy(ctx context.Context, cp *models.Copy) (*models.Copy, error) {
	barcode := cp.Barcode
	if barcode == "" {
		barcode = uuid.NewString()
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO copies (book_id, barcode, status, location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		cp.BookID, barcode, models.CopyStatusAvailable, cp.Location).Scan(&id)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: barcode already registered", ErrDuplicate)
	}
	if isForeignKeyViolation(err) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting copy: %w", err)
	}
	return s.GetCopy(ctx, id)
}

// GetCopy fetches one copy.
func (s *Store) GetCopy(ctx context.Context, id int64) (*models.Copy, error) {
	var cp models.Copy
	err := s.pool.QueryRow(ctx,
		`SELECT `+copyColumns+` FROM copies WHERE id = $1`, id).
		Scan(&cp.ID, &cp.BookID, &cp.Barcode, &cp.Status, &cp.Location, &cp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCopyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching copy %d: %w", id, err)
	}
	return &cp, nil
}

// ListCopiesByBook lists every copy of one book.
func (s *Store) ListCopiesByBook(ctx context.Context, bookID string) ([]*models.Copy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+copyColumns+` FROM copies WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing copies of book %s: %w", bookID, err)
	}
	defer rows.Close()

	var copies []*models.Copy
	for rows.Next() {
		var cp models.Copy
		if err := rows.Scan(&cp.ID, &cp.BookID, &cp.Barcode, &cp.Status, &cp.Location, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning copy: %w", err)
		}
		copies = append(copies, &cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating copies: %w", err)
	}
	return copies, nil
}

// MarkCopyLost flags a copy as lost. Lost is terminal: closing an open loan
// on a lost copy settles the loan but leaves the status untouched.
func (s *Store) MarkCopyLost(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE copies SET status = $1 WHERE id = $2`, models.CopyStatusLost, id)
	if err != nil {
		return fmt.Errorf("marking copy %d lost: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCopyNotFound
	}
	return nil
}
