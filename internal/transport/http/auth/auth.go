// Package auth materializes the caller identity forwarded by the
// authenticating gateway. Token verification happens upstream; this service
// trusts the X-User-* headers it receives on the internal network.
package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/easyorganic/order-svc/internal/service/models/identity"
	"github.com/easyorganic/order-svc/internal/transport/http/httperr"
)

type ctxKey struct{}

const (
	headerUserID    = "X-User-Id"
	headerUserRole  = "X-User-Role"
	headerUserName  = "X-User-Name"
	headerUserEmail = "X-User-Email"
)

// Middleware requires a forwarded identity and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			httperr.WriteMessage(w, http.StatusUnauthorized, "Not authorized, no user")

			return
		}

		who := identity.Identity{
			UserID: userID,
			Name:   r.Header.Get(headerUserName),
			Email:  r.Header.Get(headerUserEmail),
			Role:   identity.Role(r.Header.Get(headerUserRole)),
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, who)))
	})
}

// RequireAdmin rejects callers without the admin role. Must run after
// Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, ok := FromContext(r.Context())
		if !ok || !who.IsAdmin() {
			httperr.WriteMessage(w, http.StatusUnauthorized, "Not authorized as admin")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// FromContext returns the identity stored by Middleware.
func FromContext(ctx context.Context) (identity.Identity, bool) {
	who, ok := ctx.Value(ctxKey{}).(identity.Identity)

	return who, ok
}
