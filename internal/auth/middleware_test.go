package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vitrine/internal/auth"
)

func TestFromRequest(t *testing.T) {
	type testCase struct {
		name   string
		header string
		cookie string
		want   string
	}

	tests := []testCase{
		{name: "Header", header: "Bearer abc", want: "abc"},
		{name: "LowercaseScheme", header: "bearer abc", want: "abc"},
		{name: "Cookie", cookie: "xyz", want: "xyz"},
		{name: "HeaderPreferred", header: "Bearer abc", cookie: "xyz", want: "abc"},
		{name: "BasicFallsBackToCookie", header: "Basic Zm9v", cookie: "xyz", want: "xyz"},
		{name: "None", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}

			assert.Equal(t, tt.want, auth.FromRequest(req, "token"))
		})
	}
}

func TestMiddleware(t *testing.T) {
	tokens := auth.NewTokens("segredo", time.Hour, "vitrine-api")

	signed, _, err := tokens.Issue(auth.Identity{UserID: 3, Email: "ana@loja.com"})
	require.NoError(t, err)

	var seen auth.Identity

	handler := auth.Middleware(tokens, "token")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(3), seen.UserID)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "token não informado")
	})
}

type adminChecker map[int64]bool

func (c adminChecker) IsSuperAdmin(_ context.Context, id int64) (bool, error) {
	if id == 99 {
		return false, errors.New("db down")
	}

	return c[id], nil
}

func TestRequireSuperAdmin(t *testing.T) {
	handler := auth.RequireSuperAdmin(adminChecker{1: true})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	type testCase struct {
		name       string
		identity   *auth.Identity
		wantStatus int
	}

	tests := []testCase{
		{name: "Admin", identity: &auth.Identity{UserID: 1}, wantStatus: http.StatusOK},
		{name: "Owner", identity: &auth.Identity{UserID: 2}, wantStatus: http.StatusForbidden},
		{name: "CheckerFails", identity: &auth.Identity{UserID: 99}, wantStatus: http.StatusInternalServerError},
		{name: "Anonymous", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/lojas", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), *tt.identity))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
