package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// OpenLoan lends a copy to a client. The borrowing-policy checks (open-loan
// limit, copy availability) and both mutations run in one transaction: either
// the loan row exists and the copy is loaned, or nothing changed. Two
// concurrent attempts against the same copy are serialized by the row lock;
// the loser gets ErrCopyUnavailable.
func (s *Store) OpenLoan(ctx context.Context, copyID, clientID int64, dueDate *time.Time) (*models.Loan, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the client row before the copy row; every writer takes locks in
	// this order. The lock also serializes the open-loan count per client.
	var lockedClient int64
	err = tx.QueryRow(ctx, `SELECT id FROM clients WHERE id = $1 FOR UPDATE`, clientID).Scan(&lockedClient)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking client %d: %w", clientID, err)
	}

	var openLoans int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE client_id = $1 AND active`, clientID).Scan(&openLoans)
	if err != nil {
		return nil, fmt.Errorf("counting open loans for client %d: %w", clientID, err)
	}
	if openLoans >= models.MaxActiveLoans {
		return nil, ErrLoanLimitExceeded
	}

	var status models.CopyStatus
	err = tx.QueryRow(ctx, `SELECT status FROM copies WHERE id = $1 FOR UPDATE`, copyID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCopyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking copy %d: %w", copyID, err)
	}
	if status != models.CopyStatusAvailable {
		return nil, ErrCopyUnavailable
	}

	now := s.now()
	due := models.DefaultDueDate(now)
	if dueDate != nil {
		due = *dueDate
	}

	var loanID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO loans (copy_id, client_id, loaned_at, due_date, fine, active)
		 VALUES ($1, $2, $3, $4, 0, TRUE)
		 RETURNING id`,
		copyID, clientID, now, due).Scan(&loanID)
	if err != nil {
		return nil, fmt.Errorf("inserting loan: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE copies SET status = $1 WHERE id = $2`,
		models.CopyStatusLoaned, copyID); err != nil {
		return nil, fmt.Errorf("marking copy %d loaned: %w", copyID, err)
	}

	if err = insertAudit(ctx, tx, "loan", fmt.Sprint(loanID), "open",
		fmt.Sprintf("copy %d loaned to client %d", copyID, clientID)); err != nil {
		return nil, fmt.Errorf("writing audit entry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing loan: %w", err)
	}

	return s.GetLoan(ctx, loanID)
}

// CloseLoan returns a copy and settles the loan: the fine is computed from
// the overdue duration, the loan is deactivated and stamped, and the copy
// goes back to available unless it has been marked lost (lost is terminal).
func (s *Store) CloseLoan(ctx context.Context, loanID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		copyID  int64
		dueDate time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT copy_id, due_date FROM loans WHERE id = $1 AND active FOR UPDATE`,
		loanID).Scan(&copyID, &dueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLoanNotFoundOrClosed
	}
	if err != nil {
		return fmt.Errorf("locking loan %d: %w", loanID, err)
	}

	now := s.now()
	fine := models.FineFor(dueDate, now, s.finePerDay)

	if _, err = tx.Exec(ctx,
		`UPDATE loans SET active = FALSE, returned_at = $1, fine = $2 WHERE id = $3`,
		now, fine, loanID); err != nil {
		return fmt.Errorf("closing loan %d: %w", loanID, err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE copies SET status = $1 WHERE id = $2 AND status <> $3`,
		models.CopyStatusAvailable, copyID, models.CopyStatusLost); err != nil {
		return fmt.Errorf("releasing copy %d: %w", copyID, err)
	}

	if err = insertAudit(ctx, tx, "loan", fmt.Sprint(loanID), "close",
		fmt.Sprintf("copy %d returned, fine %.2f", copyID, fine)); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing loan closure: %w", err)
	}
	return nil
}

const loanColumns = `l.id, l.copy_id, l.client_id, l.loaned_at, l.due_date,
	l.returned_at, l.fine, l.active, l.created_at,
	c.id, c.name, c.cpf, c.email, c.phone, c.created_at,
	e.id, e.book_id, e.barcode, e.status, e.location, e.created_at`

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var (
		loan   models.Loan
		client models.Client
		cp     models.Copy
	)
	err := row.Scan(
		&loan.ID, &loan.CopyID, &loan.ClientID, &loan.LoanedAt, &loan.DueDate,
		&loan.ReturnedAt, &loan.Fine, &loan.Active, &loan.CreatedAt,
		&client.ID, &client.Name, &client.CPF, &client.Email, &client.Phone, &client.CreatedAt,
		&cp.ID, &cp.BookID, &cp.Barcode, &cp.Status, &cp.Location, &cp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	loan.Client = &client
	loan.Copy = &cp
	return &loan, nil
}

// GetLoan fetches one loan materialized with its client and copy.
func (s *Store) GetLoan(ctx context.Context, loanID int64) (*models.Loan, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+loanColumns+`
		FROM loans l
		JOIN clients c ON c.id = l.client_id
		JOIN copies e ON e.id = l.copy_id
		WHERE l.id = $1`, loanID)

	loan, err := scanLoan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLoanNotFoundOrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("fetching loan %d: %w", loanID, err)
	}
	return loan, nil
}

// ListLoans lists loans, optionally filtered on the active flag, newest
// first.
func (s *Store) ListLoans(ctx context.Context, active *bool) ([]*models.Loan, error) {
	ds := pgDialect.From(goqu.T("loans").As("l")).
		Select(
			goqu.I("l.id"), goqu.I("l.copy_id"), goqu.I("l.client_id"),
			goqu.I("l.loaned_at"), goqu.I("l.due_date"), goqu.I("l.returned_at"),
			goqu.I("l.fine"), goqu.I("l.active"), goqu.I("l.created_at"),
			goqu.I("c.id"), goqu.I("c.name"), goqu.I("c.cpf"),
			goqu.I("c.email"), goqu.I("c.phone"), goqu.I("c.created_at"),
			goqu.I("e.id"), goqu.I("e.book_id"), goqu.I("e.barcode"),
			goqu.I("e.status"), goqu.I("e.location"), goqu.I("e.created_at"),
		).
		Join(goqu.T("clients").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("l.client_id")))).
		Join(goqu.T("copies").As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("l.copy_id")))).
		Order(goqu.I("l.loaned_at").Desc())

	if active != nil {
		ds = ds.Where(goqu.Ex{"l.active": *active})
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building loan list query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loans: %w", err)
	}
	return loans, nil
}

// ListLoansByClient lists the full loan history of one client, newest first.
func (s *Store) ListLoansByClient(ctx context.Context, clientID int64) ([]*models.Loan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+loanColumns+`
		FROM loans l
		JOIN clients c ON c.id = l.client_id
		JOIN copies e ON e.id = l.copy_id
		WHERE l.client_id = $1
		ORDER BY l.loaned_at DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing loans for client %d: %w", clientID, err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loans: %w", err)
	}
	return loans, nil
}

// CountOpenLoans returns the number of open loans of one client.
func (s *Store) CountOpenLoans(ctx context.Context, clientID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE client_id = $1 AND active`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting open loans: %w", err)
	}
	return count, nil
}
