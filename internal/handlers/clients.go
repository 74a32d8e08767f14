package handlers

import (
	"context"
	"net/http"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// ClientStore is the slice of the store the clients handler needs.
type ClientStore interface {
	CreateClient(ctx context.Context, client *models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
}

// ClientsHandler handles library-member endpoints.
type ClientsHandler struct {
	clients ClientStore
}

// NewClientsHandler creates the clients handler.
func NewClientsHandler(clients ClientStore) *ClientsHandler {
	return &ClientsHandler{clients: clients}
}

type createClientRequest struct {
	Name  string `json:"name"`
	CPF   string `json:"cpf"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Create registers a client (POST /api/clients).
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.CPF == "" {
		writeError(w, http.StatusBadRequest, "name and cpf are required")
		return
	}

	client, err := h.clients.CreateClient(r.Context(), &models.Client{
		Name:  req.Name,
		CPF:   req.CPF,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

// Get returns one client (GET /api/clients/{id}).
func (h *ClientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.clients.GetClient(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// List returns every client (GET /api/clients).
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.ListClients(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}
