package models

import (
	"math"
	"time"
)

const (
	// MaxActiveLoans is the borrowing limit per client.
	MaxActiveLoans = 3

	// LoanPeriodDays is the default loan period used when no due date is
	// supplied on open.
	LoanPeriodDays = 15
)

// Loan records one copy being lent to one client. Loans are never deleted;
// closing a loan clears the active flag and stamps the return.
type Loan struct {
	ID         int64      `json:"id" db:"id"`
	CopyID     int64      `json:"copy_id" db:"copy_id"`
	ClientID   int64      `json:"client_id" db:"client_id"`
	LoanedAt   time.Time  `json:"loaned_at" db:"loaned_at"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	Fine       float64    `json:"fine" db:"fine"`
	Active     bool       `json:"active" db:"active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`

	// Nested projections, filled by the store on reads.
	Client *Client `json:"client,omitempty"`
	Copy   *Copy   `json:"copy,omitempty"`
}

// IsOpen reports whether the loan is still outstanding.
func (l *Loan) IsOpen() bool {
	return l.Active && l.ReturnedAt == nil
}

// DefaultDueDate returns the due date for a loan opened at loanedAt when the
// caller did not supply one.
func DefaultDueDate(loanedAt time.Time) time.Time {
	return loanedAt.AddDate(0, 0, LoanPeriodDays)
}

// DaysOverdue returns how many days past due a return at returnedAt is.
// Partial days count as a whole day; on-time returns yield zero.
func DaysOverdue(dueDate, returnedAt time.Time) int {
	if !returnedAt.After(dueDate) {
		return 0
	}
	return int(math.Ceil(returnedAt.Sub(dueDate).Hours() / 24))
}

// FineFor computes the fine owed for a return at returnedAt given the
// per-day overdue rate. Returns zero for on-time returns.
func FineFor(dueDate, returnedAt time.Time, ratePerDay float64) float64 {
	return float64(DaysOverdue(dueDate, returnedAt)) * ratePerDay
}
