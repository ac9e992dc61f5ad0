package respond_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "Unauthenticated",
			err:        apperr.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "não autenticado",
		},
		{
			name:       "Forbidden",
			err:        apperr.New(apperr.ErrForbidden, "acesso restrito ao administrador"),
			wantStatus: http.StatusForbidden,
			wantBody:   "acesso restrito ao administrador",
		},
		{
			name:       "NotFound",
			err:        apperr.New(apperr.ErrNotFound, "produto não encontrado"),
			wantStatus: http.StatusNotFound,
			wantBody:   "produto não encontrado",
		},
		{
			name:       "InsufficientStock",
			err:        apperr.New(apperr.ErrInsufficientStock, "estoque insuficiente para Bolo"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "estoque insuficiente para Bolo",
		},
		{
			name:       "Conflict",
			err:        apperr.ErrConflict,
			wantStatus: http.StatusBadRequest,
			wantBody:   "registro já existe",
		},
		{
			name:       "Internal",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "erro interno do servidor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["error"])
		})
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bolo"}`))

		var p payload
		require.NoError(t, respond.Decode(req, &p))
		assert.Equal(t, "Bolo", p.Name)
	})

	t.Run("UnknownField", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bolo","admin":true}`))

		var p payload
		assert.ErrorIs(t, respond.Decode(req, &p), apperr.ErrInvalidInput)
	})

	t.Run("Empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		var p payload
		assert.ErrorIs(t, respond.Decode(req, &p), apperr.ErrInvalidInput)
	})
}

func TestIDParam(t *testing.T) {
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", value)

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := respond.IDParam(withParam("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = respond.IDParam(withParam("abc"), "id")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = respond.IDParam(withParam("0"), "id")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
