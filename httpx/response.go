// Package httpx writes service results to HTTP responses for hosts that
// expose the invoice operations over HTTP.
package httpx

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/diewo77/go-invoicing/internal/report"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/validation"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// StatusOf maps a service error to its HTTP status code.
func StatusOf(err error) int {
	if _, ok := validation.As(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, report.ErrInvalidToken),
		errors.Is(err, report.ErrPublicLinksDisabled):
		return http.StatusForbidden
	case errors.Is(err, report.ErrNoTemplates),
		errors.Is(err, services.ErrUnknownPeriod):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError writes err as a JSON error. Validation errors carry their
// violations; internal errors are not described to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusUnprocessableEntity:
		ve, _ := validation.As(err)
		JSONError(w, status, "validation_failed", ve.Violations)
	case http.StatusInternalServerError:
		JSONError(w, status, "internal_error", nil)
	default:
		JSONError(w, status, http.StatusText(status), nil)
	}
}

// WriteReport sends a rendered report as a download.
func WriteReport(w http.ResponseWriter, r report.Report) {
	w.Header().Set("Content-Type", r.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": r.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(r.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(r.Content)
}
