package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

type fakeLoanStore struct {
	openErr  error
	closeErr error
	loan     *models.Loan

	openedCopyID   int64
	openedClientID int64
	openedDueDate  *time.Time
	closedLoanID   int64
}

func (f *fakeLoanStore) OpenLoan(_ context.Context, copyID, clientID int64, dueDate *time.Time) (*models.Loan, error) {
	f.openedCopyID = copyID
	f.openedClientID = clientID
	f.openedDueDate = dueDate
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.loan, nil
}

func (f *fakeLoanStore) CloseLoan(_ context.Context, loanID int64) error {
	f.closedLoanID = loanID
	return f.closeErr
}

func (f *fakeLoanStore) GetLoan(_ context.Context, loanID int64) (*models.Loan, error) {
	if f.loan == nil {
		return nil, postgres.ErrLoanNotFoundOrClosed
	}
	return f.loan, nil
}

func (f *fakeLoanStore) ListLoans(_ context.Context, active *bool) ([]*models.Loan, error) {
	if f.loan == nil {
		return nil, nil
	}
	return []*models.Loan{f.loan}, nil
}

func (f *fakeLoanStore) ListLoansByClient(_ context.Context, clientID int64) ([]*models.Loan, error) {
	return nil, nil
}

func loanRouter(store LoanStore) chi.Router {
	h := NewLoansHandler(store)
	r := chi.NewRouter()
	r.Post("/api/loans", h.Create)
	r.Get("/api/loans", h.List)
	r.Get("/api/loans/{id}", h.Get)
	r.Post("/api/loans/{id}/return", h.Return)
	r.Get("/api/loans/by-client/{clientID}", h.ByClient)
	return r
}

func TestCreateLoan(t *testing.T) {
	store := &fakeLoanStore{loan: &models.Loan{ID: 7, CopyID: 2, ClientID: 3, Active: true}}
	router := loanRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/loans",
		strings.NewReader(`{"copy_id": 2, "client_id": 3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(2), store.openedCopyID)
	assert.Equal(t, int64(3), store.openedClientID)
	assert.Nil(t, store.openedDueDate, "default due date is decided by the store")
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestCreateLoanWithDueDate(t *testing.T) {
	store := &fakeLoanStore{loan: &models.Loan{ID: 7, Active: true}}
	router := loanRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/loans",
		strings.NewReader(`{"copy_id": 2, "client_id": 3, "due_date": "2025-04-01"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.openedDueDate)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *store.openedDueDate)
}

func TestCreateLoanBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing ids", `{}`},
		{"invalid json", `{`},
		{"bad due date", `{"copy_id": 2, "client_id": 3, "due_date": "April Fools"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := loanRouter(&fakeLoanStore{})
			req := httptest.NewRequest(http.MethodPost, "/api/loans", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateLoanPolicyRejections(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"loan limit exceeded", postgres.ErrLoanLimitExceeded, http.StatusBadRequest},
		{"copy unavailable", postgres.ErrCopyUnavailable, http.StatusBadRequest},
		{"unknown client", postgres.ErrClientNotFound, http.StatusNotFound},
		{"unknown copy", postgres.ErrCopyNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := loanRouter(&fakeLoanStore{openErr: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/loans",
				strings.NewReader(`{"copy_id": 2, "client_id": 3}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestReturnLoan(t *testing.T) {
	returned := time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC)
	store := &fakeLoanStore{loan: &models.Loan{ID: 7, Fine: 4.5, ReturnedAt: &returned}}
	router := loanRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/loans/7/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), store.closedLoanID)
	assert.Contains(t, rec.Body.String(), `"fine":4.5`)
}

func TestReturnLoanAlreadyClosed(t *testing.T) {
	router := loanRouter(&fakeLoanStore{closeErr: postgres.ErrLoanNotFoundOrClosed})

	req := httptest.NewRequest(http.MethodPost, "/api/loans/7/return", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLoansActiveFilter(t *testing.T) {
	router := loanRouter(&fakeLoanStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/loans?active=maybe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
