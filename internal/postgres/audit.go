package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// insertAudit records a mutation in the audit log within the caller's
// transaction, so the audit row commits or rolls back with the change it
// describes.
func insertAudit(ctx context.Context, tx execer, entity, entityID, action, description string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO audit_log (id, entity, entity_id, action, description)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), entity, entityID, action, description)
	return err
}
