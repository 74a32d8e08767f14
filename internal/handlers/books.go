package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// BookStore is the slice of the store the books handler needs.
type BookStore interface {
	CreateBook(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) (*models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context) ([]*models.Book, error)
}

// BooksHandler handles catalog book endpoints.
type BooksHandler struct {
	books BookStore
}

// NewBooksHandler creates the books handler.
func NewBooksHandler(books BookStore) *BooksHandler {
	return &BooksHandler{books: books}
}

type createBookRequest struct {
	Title           string  `json:"title"`
	ISBN            string  `json:"isbn"`
	PublicationYear int     `json:"publication_year"`
	PublisherID     *int64  `json:"publisher_id"`
	AuthorIDs       []int64 `json:"author_ids"`
	CategoryIDs     []int64 `json:"category_ids"`
}

// Create adds a book to the catalog; its identifier is issued by the
// sequence generator (POST /api/books).
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	book, err := h.books.CreateBook(r.Context(), &models.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		PublisherID:     req.PublisherID,
	}, req.AuthorIDs, req.CategoryIDs)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// List returns the whole catalog with nested projections (GET /api/books).
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Get returns one book (GET /api/books/{id}).
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}
