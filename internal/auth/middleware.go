package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/http/respond"
)

// FromRequest returns the bearer token from the Authorization header, falling
// back to the named cookie.
func FromRequest(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}

	return ""
}

func Middleware(v Verifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Verify(FromRequest(r, cookieName))
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

type AdminChecker interface {
	IsSuperAdmin(ctx context.Context, userID int64) (bool, error)
}

var errAdminOnly = apperr.New(apperr.ErrForbidden, "acesso restrito ao administrador")

// RequireSuperAdmin must run after Middleware.
func RequireSuperAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				respond.Error(w, r, apperr.ErrUnauthenticated)
				return
			}

			isAdmin, err := checker.IsSuperAdmin(r.Context(), id.UserID)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			if !isAdmin {
				respond.Error(w, r, errAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
