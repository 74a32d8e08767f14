package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
)

// LoanStore is the slice of the store the loans handler needs.
type LoanStore interface {
	OpenLoan(ctx context.Context, copyID, clientID int64, dueDate *time.Time) (*models.Loan, error)
	CloseLoan(ctx context.Context, loanID int64) error
	GetLoan(ctx context.Context, loanID int64) (*models.Loan, error)
	ListLoans(ctx context.Context, active *bool) ([]*models.Loan, error)
	ListLoansByClient(ctx context.Context, clientID int64) ([]*models.Loan, error)
}

// LoansHandler handles loan endpoints.
type LoansHandler struct {
	loans LoanStore
}

// NewLoansHandler creates the loans handler.
func NewLoansHandler(loans LoanStore) *LoansHandler {
	return &LoansHandler{loans: loans}
}

type createLoanRequest struct {
	CopyID   int64  `json:"copy_id"`
	ClientID int64  `json:"client_id"`
	DueDate  string `json:"due_date,omitempty"`
}

// Create opens a loan for a client on a copy (POST /api/loans).
// The due date is optional and defaults to the standard loan period.
func (h *LoansHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CopyID == 0 || req.ClientID == 0 {
		writeError(w, http.StatusBadRequest, "copy_id and client_id are required")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due_date")
			return
		}
		dueDate = &parsed
	}

	loan, err := h.loans.OpenLoan(r.Context(), req.CopyID, req.ClientID, dueDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, loan)
}

// Return closes an open loan and settles any fine (POST /api/loans/{id}/return).
func (h *LoansHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.loans.CloseLoan(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	loan, err := h.loans.GetLoan(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// Get returns one loan (GET /api/loans/{id}).
func (h *LoansHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loan, err := h.loans.GetLoan(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// List returns loans, optionally filtered with ?active=true|false
// (GET /api/loans).
func (h *LoansHandler) List(w http.ResponseWriter, r *http.Request) {
	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid active filter")
			return
		}
		active = &parsed
	}

	loans, err := h.loans.ListLoans(r.Context(), active)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// ByClient returns the loan history of a client
// (GET /api/loans/by-client/{clientID}).
func (h *LoansHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := urlParamInt64(r, "clientID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	loans, err := h.loans.ListLoansByClient(r.Context(), clientID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}
