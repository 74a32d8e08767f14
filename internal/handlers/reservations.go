package handlers

import (
	"context"
	"net/http"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// ReservationStore is the slice of the store the reservations handler needs.
type ReservationStore interface {
	CreateReservation(ctx context.Context, copyID, clientID int64) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	ListReservations(ctx context.Context, status *models.ReservationStatus) ([]*models.Reservation, error)
}

// ReservationsHandler handles reservation endpoints.
type ReservationsHandler struct {
	reservations ReservationStore
}

// NewReservationsHandler creates the reservations handler.
func NewReservationsHandler(reservations ReservationStore) *ReservationsHandler {
	return &ReservationsHandler{reservations: reservations}
}

type createReservationRequest struct {
	CopyID   int64 `json:"copy_id"`
	ClientID int64 `json:"client_id"`
}

// Create places a hold on an available copy (POST /api/reservations).
func (h *ReservationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CopyID == 0 || req.ClientID == 0 {
		writeError(w, http.StatusBadRequest, "copy_id and client_id are required")
		return
	}

	res, err := h.reservations.CreateReservation(r.Context(), req.CopyID, req.ClientID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// Cancel cancels an active reservation and releases the copy
// (POST /api/reservations/{id}/cancel).
func (h *ReservationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.reservations.CancelReservation(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	res, err := h.reservations.GetReservation(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// List returns reservations, optionally filtered with ?status=
// (GET /api/reservations).
func (h *ReservationsHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *models.ReservationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed := models.ReservationStatus(raw)
		if !parsed.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		status = &parsed
	}

	reservations, err := h.reservations.ListReservations(r.Context(), status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}
