package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeStoreError maps store sentinels onto the API error taxonomy.
// Business-rule rejections and duplicates are client errors with an
// explanatory message; unknown store failures are logged and surfaced as an
// opaque 500 without internal detail.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postgres.ErrLoanLimitExceeded),
		errors.Is(err, postgres.ErrCopyUnavailable),
		errors.Is(err, postgres.ErrDuplicate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, postgres.ErrBookNotFound),
		errors.Is(err, postgres.ErrCopyNotFound),
		errors.Is(err, postgres.ErrClientNotFound),
		errors.Is(err, postgres.ErrUserNotFound),
		errors.Is(err, postgres.ErrAuthorNotFound),
		errors.Is(err, postgres.ErrCategoryNotFound),
		errors.Is(err, postgres.ErrPublisherNotFound),
		errors.Is(err, postgres.ErrLoanNotFoundOrClosed),
		errors.Is(err, postgres.ErrReservationNotActive):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// urlParamInt64 parses a numeric chi URL parameter.
func urlParamInt64(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseDate accepts RFC 3339 timestamps or plain dates (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
