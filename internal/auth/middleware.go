// InvoiceMe Organizer - Invoice intake and Drive folder organization
// Copyright 2026 InvoiceMe
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/invoiceme/organizer/internal/models"
)

type contextKey string

const sessionUserKey contextKey = "session_user"

// UserFromContext returns the authenticated session user placed on the
// context by RequireUser / RequireAdmin.
func UserFromContext(ctx context.Context) (models.SessionUser, bool) {
	u, ok := ctx.Value(sessionUserKey).(models.SessionUser)
	return u, ok
}

// ContextWithUser returns a context carrying the session user. Exposed for
// handler tests.
func ContextWithUser(ctx context.Context, user models.SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserKey, user)
}

// RequireUser rejects requests without a valid session cookie with 401 and
// otherwise stores the session user on the request context.
func (s *Sessions) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.FromRequest(r)
		if err != nil {
			deny(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireAdmin is RequireUser plus a 403 for sessions without the admin
// flag.
func (s *Sessions) RequireAdmin(next http.Handler) http.Handler {
	return s.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if !user.IsAdmin {
			deny(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// deny writes the API error envelope without importing the api package
// (which depends on auth).
func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":    false,
		"error": message,
	})
}
