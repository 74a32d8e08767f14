package models

import "fmt"

// BookSequenceName is the counter name used for catalog book identifiers.
const BookSequenceName = "book"

// SequenceCounter is one row of the per-year counter table. Counters are
// created lazily, only ever incremented, and never deleted.
type SequenceCounter struct {
	Name  string `json:"name" db:"seq_name"`
	Year  int    `json:"year" db:"seq_year"`
	Value int64  `json:"value" db:"seq_value"`
}

// FormatBookID renders an issued counter value as a catalog identifier,
// e.g. LIV-2025-0001.
func FormatBookID(year int, seq int64) string {
	return fmt.Sprintf("LIV-%04d-%04d", year, seq)
}
