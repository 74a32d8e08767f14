package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusExpired   ReservationStatus = "expired"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ReservationHoldDays is how long a reservation holds a copy before expiry.
const ReservationHoldDays = 3

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusActive, ReservationStatusFulfilled,
		ReservationStatusExpired, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation holds an available copy for a client. While a reservation is
// active the copy's status is reserved and it cannot be lent to anyone else.
type Reservation struct {
	ID         int64             `json:"id" db:"id"`
	CopyID     int64             `json:"copy_id" db:"copy_id"`
	ClientID   int64             `json:"client_id" db:"client_id"`
	ReservedAt time.Time         `json:"reserved_at" db:"reserved_at"`
	ExpiresAt  *time.Time        `json:"expires_at,omitempty" db:"expires_at"`
	Notified   bool              `json:"notified" db:"notified"`
	Status     ReservationStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
}

// IsActive reports whether the reservation still holds its copy.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}
