package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/http/apierr"
)

// Identity headers set by the upstream gateway after authentication.
const (
	UserIDHeader    = "X-User-ID"
	UserAdminHeader = "X-User-Admin"
)

type User struct {
	ID      string
	IsAdmin bool
}

type userCtxKey struct{}

// Identity lifts the gateway identity headers into the request context.
// Requests without a user id stay anonymous.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(UserIDHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			isAdmin, _ := strconv.ParseBool(r.Header.Get(UserAdminHeader))
			ctx := context.WithValue(r.Context(), userCtxKey{}, User{ID: id, IsAdmin: isAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(User)
	return u, ok
}

// RequireUser rejects anonymous requests.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				writeError(w, apperr.UnauthorizedErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests from anonymous and non-admin users.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			switch {
			case !ok:
				writeError(w, apperr.UnauthorizedErr)
			case !u.IsAdmin:
				writeError(w, apperr.ForbiddenErr)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	res := apierr.New(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(res)
}
