package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// CreateBook inserts a catalog record with a freshly issued identifier and
// its author/category associations, all in one transaction. The identifier
// issuance participates in the same transaction, so a failed insert does not
// burn a sequence value.
func (s *Store) CreateBook(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) (*models.Book, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := s.issueIdentifier(ctx, tx, models.BookSequenceName, s.now().Year())
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO books (id, title, isbn, publication_year, publisher_id)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, 0), $5)`,
		id, book.Title, book.ISBN, book.PublicationYear, book.PublisherID)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: isbn already registered", ErrDuplicate)
	}
	if isForeignKeyViolation(err) {
		return nil, ErrPublisherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inserting book: %w", err)
	}

	for _, authorID := range authorIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, id, authorID)
		if isForeignKeyViolation(err) {
			return nil, ErrAuthorNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("linking author %d: %w", authorID, err)
		}
	}

	for _, categoryID := range categoryIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO book_categories (book_id, category_id) VALUES ($1, $2)`, id, categoryID)
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("linking category %d: %w", categoryID, err)
		}
	}

	if err = insertAudit(ctx, tx, "book", id, "create", book.Title); err != nil {
		return nil, fmt.Errorf("writing audit entry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing book: %w", err)
	}

	return s.GetBook(ctx, id)
}

// GetBook fetches one book with its publisher, authors and categories.
func (s *Store) GetBook(ctx context.Context, id string) (*models.Book, error) {
	books, err := s.queryBooks(ctx, &id)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrBookNotFound
	}
	return books[0], nil
}

// ListBooks lists the whole catalog with nested publisher, authors and
// categories.
func (s *Store) ListBooks(ctx context.Context) ([]*models.Book, error) {
	return s.queryBooks(ctx, nil)
}

func (s *Store) queryBooks(ctx context.Context, id *string) ([]*models.Book, error) {
	ds := pgDialect.From(goqu.T("books").As("b")).
		Select(
			goqu.I("b.id"), goqu.I("b.title"),
			goqu.COALESCE(goqu.I("b.isbn"), ""),
			goqu.COALESCE(goqu.I("b.publication_year"), 0),
			goqu.I("b.publisher_id"), goqu.I("b.created_at"),
			goqu.I("p.name"), goqu.I("p.created_at"),
		).
		LeftJoin(goqu.T("publishers").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("b.publisher_id")))).
		Order(goqu.I("b.created_at").Desc(), goqu.I("b.id").Desc())

	if id != nil {
		ds = ds.Where(goqu.Ex{"b.id": *id})
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building book query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var (
		books []*models.Book
		byID  = make(map[string]*models.Book)
	)
	for rows.Next() {
		var (
			book             models.Book
			publisherName    *string
			publisherCreated *time.Time
		)
		if err := rows.Scan(
			&book.ID, &book.Title, &book.ISBN, &book.PublicationYear,
			&book.PublisherID, &book.CreatedAt,
			&publisherName, &publisherCreated,
		); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		if book.PublisherID != nil && publisherName != nil {
			book.Publisher = &models.Publisher{ID: *book.PublisherID, Name: *publisherName}
			if publisherCreated != nil {
				book.Publisher.CreatedAt = *publisherCreated
			}
		}
		book.Authors = []models.Author{}
		book.Categories = []models.Category{}
		books = append(books, &book)
		byID[book.ID] = &book
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	if len(books) == 0 {
		return books, nil
	}

	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	if err := s.attachAuthors(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, ids, byID); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Store) attachAuthors(ctx context.Context, bookIDs []string, byID map[string]*models.Book) error {
	query, args, err := pgDialect.From(goqu.T("book_authors").As("ba")).
		Select(goqu.I("ba.book_id"), goqu.I("a.id"), goqu.I("a.name"), goqu.I("a.surname"), goqu.I("a.created_at")).
		Join(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("ba.author_id")))).
		Where(goqu.I("ba.book_id").In(bookIDs)).
		Order(goqu.I("a.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building author query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying book authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookID string
			author models.Author
		)
		if err := rows.Scan(&bookID, &author.ID, &author.Name, &author.Surname, &author.CreatedAt); err != nil {
			return fmt.Errorf("scanning author: %w", err)
		}
		if book, ok := byID[bookID]; ok {
			book.Authors = append(book.Authors, author)
		}
	}
	return rows.Err()
}

func (s *Store) attachCategories(ctx context.Context, bookIDs []string, byID map[string]*models.Book) error {
	query, args, err := pgDialect.From(goqu.T("book_categories").As("bc")).
		Select(goqu.I("bc.book_id"), goqu.I("c.id"), goqu.I("c.name"), goqu.I("c.created_at")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("bc.category_id")))).
		Where(goqu.I("bc.book_id").In(bookIDs)).
		Order(goqu.I("c.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("building category query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying book categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookID   string
			category models.Category
		)
		if err := rows.Scan(&bookID, &category.ID, &category.Name, &category.CreatedAt); err != nil {
			return fmt.Errorf("scanning category: %w", err)
		}
		if book, ok := byID[bookID]; ok {
			book.Categories = append(book.Categories, category)
		}
	}
	return rows.Err()
}
