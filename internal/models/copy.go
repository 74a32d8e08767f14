package models

import "time"

// CopyStatus is the availability state of a physical copy.
type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "available"
	CopyStatusLoaned    CopyStatus = "loaned"
	CopyStatusReserved  CopyStatus = "reserved"
	CopyStatusLost      CopyStatus = "lost" // terminal, never reverted by loan closure
)

// ValidCopyStatus reports whether s is one of the known copy statuses.
func ValidCopyStatus(s CopyStatus) bool {
	switch s {
	case CopyStatusAvailable, CopyStatusLoaned, CopyStatusReserved, CopyStatusLost:
		return true
	}
	return false
}

// Copy is a physical, lendable unit of a catalog book. Its status is only
// ever changed by loan and reservation operations, never by plain updates.
type Copy struct {
	ID        int64      `json:"id" db:"id"`
	BookID    string     `json:"book_id" db:"book_id"`
	Barcode   string     `json:"barcode" db:"barcode"`
	Status    CopyStatus `json:"status" db:"status"`
	Location  string     `json:"location,omitempty" db:"location"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Lendable reports whether the copy can be handed out on a new loan.
func (c *Copy) Lendable() bool {
	return c.Status == CopyStatusAvailable
}
