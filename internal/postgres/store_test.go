package postgres

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// Integration tests need a real database. They are skipped unless
// TEST_DATABASE_URL points at a disposable Postgres instance.
func testStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := Connect(ctx, dsn, opts...)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.InitSchema(ctx))

	// Every test starts from an empty database.
	_, err = store.pool.Exec(ctx, `
		TRUNCATE audit_log, reservations, loans, copies, book_authors,
			book_categories, books, clients, users, authors, categories,
			publishers, seq_counters RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return store
}

func createTestBook(t *testing.T, store *Store, title string) *models.Book {
	t.Helper()
	book, err := store.CreateBook(context.Background(), &models.Book{Title: title}, nil, nil)
	require.NoError(t, err)
	return book
}

func createTestCopy(t *testing.T, store *Store, bookID string) *models.Copy {
	t.Helper()
	cp, err := store.CreateCopy(context.Background(), &models.Copy{BookID: bookID})
	require.NoError(t, err)
	return cp
}

var cpfCounter atomic.Int64

func createTestClient(t *testing.T, store *Store, name string) *models.Client {
	t.Helper()
	client, err := store.CreateClient(context.Background(), &models.Client{
		Name: name,
		CPF:  fmt.Sprintf("%011d", cpfCounter.Add(1)),
	})
	require.NoError(t, err)
	return client
}
