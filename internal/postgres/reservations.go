package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

const reservationColumns = `id, copy_id, client_id, reserved_at, expires_at, notified, status, created_at`

// CreateReservation holds an available copy for a client. The availability
// check and the status flip run in one transaction, mirroring OpenLoan:
// two concurrent reservations of the same copy are serialized by the row
// lock and the loser gets ErrCopyUnavailable.
func (s *Store) CreateReservation(ctx context.Context, copyID, clientID int64) (*models.Reservation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var lockedClient int64
	err = tx.QueryRow(ctx, `SELECT id FROM clients WHERE id = $1 FOR UPDATE`, clientID).Scan(&lockedClient)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("locking client %d: %w", clientID, err)
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
	expires := now.AddDate(0, 0, models.ReservationHoldDays)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO reservations (copy_id, client_id, reserved_at, expires_at, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		copyID, clientID, now, expires, models.ReservationStatusActive).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("inserting reservation: %w", err)
	}

	if _, err = tx.Exec(ctx, `UPDATE copies SET status = $1 WHERE id = $2`,
		models.CopyStatusReserved, copyID); err != nil {
		return nil, fmt.Errorf("marking copy %d reserved: %w", copyID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing reservation: %w", err)
	}

	return s.GetReservation(ctx, id)
}

// CancelReservation cancels an active reservation and releases its copy.
func (s *Store) CancelReservation(ctx context.Context, id int64) error {
	return s.closeReservation(ctx, id, models.ReservationStatusCancelled)
}

// ExpireReservation expires an active reservation and releases its copy.
func (s *Store) ExpireReservation(ctx context.Context, id int64) error {
	return s.closeReservation(ctx, id, models.ReservationStatusExpired)
}

func (s *Store) closeReservation(ctx context.Context, id int64, to models.ReservationStatus) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var copyID int64
	err = tx.QueryRow(ctx,
		`SELECT copy_id FROM reservations WHERE id = $1 AND status = $2 FOR UPDATE`,
		id, models.ReservationStatusActive).Scan(&copyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrReservationNotActive
	}
	if err != nil {
		return fmt.Errorf("locking reservation %d: %w", id, err)
	}

	if _, err = tx.Exec(ctx,
		`UPDATE reservations SET status = $1 WHERE id = $2`, to, id); err != nil {
		return fmt.Errorf("updating reservation %d: %w", id, err)
	}

	// Release the copy only if it is still held by this reservation.
	if _, err = tx.Exec(ctx,
		`UPDATE copies SET status = $1 WHERE id = $2 AND status = $3`,
		models.CopyStatusAvailable, copyID, models.CopyStatusReserved); err != nil {
		return fmt.Errorf("releasing copy %d: %w", copyID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reservation update: %w", err)
	}
	return nil
}

// GetReservation fetches one reservation.
func (s *Store) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var r models.Reservation
	err := s.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id).
		Scan(&r.ID, &r.CopyID, &r.ClientID, &r.ReservedAt, &r.ExpiresAt, &r.Notified, &r.Status, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReservationNotActive
	}
	if err != nil {
		return nil, fmt.Errorf("fetching reservation %d: %w", id, err)
	}
	return &r, nil
}

// ListReservations lists reservations, optionally filtered by status.
func (s *Store) ListReservations(ctx context.Context, status *models.ReservationStatus) ([]*models.Reservation, error) {
	ds := pgDialect.From("reservations").
		Select(goqu.I("id"), goqu.I("copy_id"), goqu.I("client_id"), goqu.I("reserved_at"),
			goqu.I("expires_at"), goqu.I("notified"), goqu.I("status"), goqu.I("created_at")).
		Order(goqu.I("reserved_at").Desc())
	if status != nil {
		ds = ds.Where(goqu.Ex{"status": *status})
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building reservation query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.ID, &r.CopyID, &r.ClientID, &r.ReservedAt, &r.ExpiresAt,
			&r.Notified, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		reservations = append(reservations, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservations: %w", err)
	}
	return reservations, nil
}
