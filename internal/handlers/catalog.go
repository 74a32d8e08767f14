package handlers

import (
	"context"
	"net/http"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// CatalogStore is the slice of the store for the auxiliary catalog entities.
type CatalogStore interface {
	CreateAuthor(ctx context.Context, author *models.Author) (*models.Author, error)
	ListAuthors(ctx context.Context) ([]*models.Author, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreatePublisher(ctx context.Context, publisher *models.Publisher) (*models.Publisher, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
}

// CatalogHandler handles authors, categories and publishers.
type CatalogHandler struct {
	catalog CatalogStore
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(catalog CatalogStore) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type createAuthorRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// CreateAuthor adds an author (POST /api/authors).
func (h *CatalogHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	author, err := h.catalog.CreateAuthor(r.Context(), &models.Author{Name: req.Name, Surname: req.Surname})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

// ListAuthors lists every author (GET /api/authors).
func (h *CatalogHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalog.ListAuthors(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

type createNamedRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category (POST /api/categories).
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), &models.Category{Name: req.Name})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// ListCategories lists every category (GET /api/categories).
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreatePublisher adds a publisher (POST /api/publishers).
func (h *CatalogHandler) CreatePublisher(w http.ResponseWriter, r *http.Request) {
	var req createNamedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	publisher, err := h.catalog.CreatePublisher(r.Context(), &models.Publisher{Name: req.Name})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, publisher)
}

// ListPublishers lists every publisher (GET /api/publishers).
func (h *CatalogHandler) ListPublishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.catalog.ListPublishers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, publishers)
}
