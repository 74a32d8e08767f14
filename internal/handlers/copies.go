package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// CopyStore is the slice of the store the copies handler needs.
type CopyStore interface {
	CreateCopy(ctx context.Context, cp *models.Copy) (*models.Copy, error)
	GetCopy(ctx context.Context, id int64) (*models.Copy, error)
	ListCopiesByBook(ctx context.Context, bookID string) ([]*models.Copy, error)
	MarkCopyLost(ctx context.Context, id int64) error
}

// CopiesHandler handles physical-copy endpoints.
type CopiesHandler struct {
	copies CopyStore
}

// NewCopiesHandler creates the copies handler.
func NewCopiesHandler(copies CopyStore) *CopiesHandler {
	return &CopiesHandler{copies: copies}
}

type createCopyRequest struct {
	BookID   string `json:"book_id"`
	Barcode  string `json:"barcode"`
	Location string `json:"location"`
}

// Create registers a copy of a book (POST /api/copies). A missing barcode
// gets a generated one.
func (h *CopiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCopyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BookID == "" {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}
	cp, err := h.copies.CreateCopy(r.Context(), &models.Copy{
		BookID:   req.BookID,
		Barcode:  req.Barcode,
		Location: req.Location,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cp)
}

// Get returns one copy (GET /api/copies/{id}).
func (h *CopiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cp, err := h.copies.GetCopy(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

// ListByBook lists the copies of one book (GET /api/copies/by-book/{bookID}).
func (h *CopiesHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	copies, err := h.copies.ListCopiesByBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, copies)
}

// MarkLost flags a copy as lost (POST /api/copies/{id}/lost). Lost is
// terminal; a later loan closure will not revert it.
func (h *CopiesHandler) MarkLost(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.copies.MarkCopyLost(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "copy marked as lost"})
}
