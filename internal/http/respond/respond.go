// Package respond holds the JSON helpers shared by every HTTP handler.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err as {"error": "..."}. Errors outside the apperr taxonomy are
// logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	msg, ok := apperr.Message(err)
	if !ok {
		slog.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "erro interno do servidor"})

		return
	}

	JSON(w, Status(err), errorResponse{Error: msg})
}

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrInsufficientStock),
		errors.Is(err, apperr.ErrInsufficientBalance),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.ErrInvalidInput, "corpo da requisição vazio")
		}

		return apperr.Newf(apperr.ErrInvalidInput, "corpo da requisição inválido: %v", err)
	}

	return nil
}

// IDParam parses the named chi URL parameter as a positive int64.
func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.ErrInvalidInput, fmt.Sprintf("%s inválido", name))
	}

	return id, nil
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "parâmetro %s inválido", name)
	}

	return &v, nil
}

// QueryInt parses an optional positive integer query parameter; 0 when absent.
func QueryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, apperr.Newf(apperr.ErrInvalidInput, "parâmetro %s inválido", name)
	}

	return v, nil
}
