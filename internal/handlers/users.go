package handlers

import (
	"net/http"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/middleware"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// UsersHandler handles staff-account endpoints.
type UsersHandler struct {
	users UserStore
}

// NewUsersHandler creates the users handler.
func NewUsersHandler(users UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me returns the authenticated caller's own profile (GET /api/users/me).
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Create registers a staff account (POST /api/users, administrators only;
// the permission gate runs in the middleware).
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Role:         role,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
