package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

func TestIssueIdentifierSequential(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2025)
	require.NoError(t, err)
	assert.Equal(t, "LIV-2025-0001", first)

	second, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2025)
	require.NoError(t, err)
	assert.Equal(t, "LIV-2025-0002", second)

	third, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2025)
	require.NoError(t, err)
	assert.Equal(t, "LIV-2025-0003", third)
}

func TestIssueIdentifierPerYear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2024)
	require.NoError(t, err)

	// A new year starts its own counter at one.
	id, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2025)
	require.NoError(t, err)
	assert.Equal(t, "LIV-2025-0001", id)
}

func TestIssueIdentifierConcurrent(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	const workers = 20

	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.IssueIdentifier(ctx, models.BookSequenceName, 2025)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	// Every concurrent caller must get a distinct identifier.
	seen := make(map[string]bool, workers)
	for id := range ids {
		assert.False(t, seen[id], "identifier %s issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestCreateBookAssignsIdentifiers(t *testing.T) {
	store := testStore(t)

	first := createTestBook(t, store, "Dom Casmurro")
	second := createTestBook(t, store, "Vidas Secas")

	assert.Regexp(t, `^LIV-\d{4}-\d{4}$`, first.ID)
	assert.Regexp(t, `^LIV-\d{4}-\d{4}$`, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}
