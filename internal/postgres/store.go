// Package postgres implements the persistence boundary of the library
// backend on PostgreSQL. All borrowing-policy invariants and the identifier
// sequence are enforced here, inside transactions, so that correctness under
// concurrent requests relies only on the database and never on in-process
// locking.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultFinePerDay is the fallback per-day overdue rate. The effective rate
// is operational policy and comes from configuration (FINE_PER_DAY).
const DefaultFinePerDay = 1.00

var pgDialect = goqu.Dialect("postgres")

// Store wraps a pgx connection pool and exposes the entity operations the
// handlers consume.
type Store struct {
	pool       *pgxpool.Pool
	now        func() time.Time
	finePerDay float64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for loan timestamps, due-date defaulting
// and fine computation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFinePerDay sets the per-day overdue rate used when closing loans.
func WithFinePerDay(rate float64) Option {
	return func(s *Store) {
		if rate >= 0 {
			s.finePerDay = rate
		}
	}
}

// Connect opens a connection pool for the given DSN and verifies it with a
// ping.
func Connect(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{
		pool:       pool,
		now:        time.Now,
		finePerDay: DefaultFinePerDay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so single-row
// statements can run inside or outside an enclosing transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
