package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the store. Business-rule rejections and
// not-found conditions never leave a partial mutation behind; the enclosing
// transaction is rolled back before they are returned.
var (
	ErrBookNotFound         = errors.New("book not found")
	ErrCopyNotFound         = errors.New("copy not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthorNotFound       = errors.New("author not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrPublisherNotFound    = errors.New("publisher not found")
	ErrLoanNotFoundOrClosed = errors.New("loan not found or already closed")

	// ErrLoanLimitExceeded rejects a loan for a client that already has the
	// maximum number of open loans.
	ErrLoanLimitExceeded = errors.New("client has reached the active loan limit")

	// ErrCopyUnavailable rejects a loan or reservation against a copy whose
	// status is not available.
	ErrCopyUnavailable = errors.New("copy is not available")

	ErrReservationNotActive = errors.New("reservation not found or not active")

	// ErrDuplicate wraps unique-constraint violations (cpf, isbn, username,
	// barcode, category name).
	ErrDuplicate = errors.New("record already exists")

	// ErrSequenceGeneration wraps any store failure while issuing a catalog
	// identifier.
	ErrSequenceGeneration = errors.New("sequence generation failed")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
