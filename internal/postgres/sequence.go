package postgres

import (
	"context"
	"fmt"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// issueCounterSQL creates the counter row on first use and increments it
// otherwise, in one indivisible statement. Concurrent issuances for the same
// (name, year) are serialized by the database, so every caller sees a value
// strictly greater than all previously issued ones and no value is handed
// out twice. Creating and incrementing in separate commits would leave a
// window where two callers both observe a missing row.
const issueCounterSQL = `
	INSERT INTO seq_counters (seq_name, seq_year, seq_value)
	VALUES ($1, $2, 1)
	ON CONFLICT (seq_name, seq_year)
	DO UPDATE SET seq_value = seq_counters.seq_value + 1
	RETURNING seq_value`

// IssueIdentifier issues the next catalog identifier for (name, year),
// formatted as LIV-YYYY-NNNN.
func (s *Store) IssueIdentifier(ctx context.Context, name string, year int) (string, error) {
	return s.issueIdentifier(ctx, s.pool, name, year)
}

func (s *Store) issueIdentifier(ctx context.Context, q rowQuerier, name string, year int) (string, error) {
	var seq int64
	if err := q.QueryRow(ctx, issueCounterSQL, name, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSequenceGeneration, err)
	}
	return models.FormatBookID(year, seq), nil
}
