package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBookID(t *testing.T) {
	assert.Equal(t, "LIV-2025-0001", FormatBookID(2025, 1))
	assert.Equal(t, "LIV-2025-0042", FormatBookID(2025, 42))
	assert.Equal(t, "LIV-2026-1000", FormatBookID(2026, 1000))
	// Values past four digits widen instead of wrapping.
	assert.Equal(t, "LIV-2025-12345", FormatBookID(2025, 12345))
}
